package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"walletpoker-server/internal/config"
	"walletpoker-server/internal/jwt"
	"walletpoker-server/pkg/token"
)

var command = flag.String("c", "token", "specifies the command (token, secret)")
var ttl = flag.Duration("ttl", time.Hour*24, "how long an issued token is valid")
var admin = flag.Bool("admin", false, "issue a token that can create tournaments")

func main() {
	flag.Parse()

	switch *command {
	case "token":
		secret := config.Instance().Auth.Secret
		if secret == "" {
			secret = getSecret()
			if secret == "" {
				os.Exit(1)
			}
		}

		jwt.UseSecret([]byte(secret))

		playerID, err := getInput("Player ID")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if playerID == "" {
			os.Exit(1)
		}

		sign := jwt.Sign
		if *admin {
			sign = jwt.SignAdmin
		}

		signed, err := sign(playerID, *ttl)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(signed)
	case "secret":
		secret, err := token.Generate(48)
		if err != nil {
			logrus.WithError(err).Fatal("could not generate secret")
		}

		fmt.Println(secret)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getSecret() string {
	for {
		fmt.Print("Auth secret: ")
		secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			logrus.WithError(err).Warn("could not read secret")
			return ""
		}
		fmt.Println("")

		secret := strings.TrimRight(string(secretBytes), "\r\n")
		if secret == "" {
			return ""
		}

		if len(secret) < 16 {
			_, _ = fmt.Fprintf(os.Stderr, "secret must be 16 or more characters\n")
			continue
		}

		return secret
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}

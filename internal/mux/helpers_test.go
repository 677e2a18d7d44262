package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"walletpoker-server/internal/config"
	"walletpoker-server/internal/jwt"
	"walletpoker-server/internal/util"
	"walletpoker-server/pkg/poker/potmanager"
	"walletpoker-server/pkg/room"
	"walletpoker-server/pkg/store"
)

func setupJWT() {
	defer util.SetEnv("WPS_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("WPS_AUTH_SECRET", "test-secret")()
	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadSecret()
}

func token(playerID string) string {
	signed, err := jwt.Sign(playerID, time.Hour)
	if err != nil {
		panic(err)
	}

	return signed
}

func adminToken(playerID string) string {
	signed, err := jwt.SignAdmin(playerID, time.Hour)
	if err != nil {
		panic(err)
	}

	return signed
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	setupJWT()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), store.NewMemory(), room.Options{
		MinPlayers:    2,
		MaxPlayers:    6,
		NextHandDelay: time.Hour,
		RemainderRule: potmanager.RemainderToFirstSeat,
		StoreTimeout:  time.Second,
		Generator:     noShuffle{},
	})

	ts := httptest.NewServer(NewMux("v1.2.3", pitBoss))
	t.Cleanup(func() {
		ts.Close()
		pitBoss.Shutdown()
	})

	return ts
}

// noShuffle leaves the deck in its original order
type noShuffle struct{}

func (noShuffle) Intn(n int) int {
	return n - 1
}

// testSnapshot holds the fields of a snapshot the tests look at
type testSnapshot struct {
	HandNumber int    `json:"handNumber"`
	Pot        int    `json:"pot"`
	Status     string `json:"status"`
	ActingSeat *int   `json:"actingSeat"`
	Seats      []struct {
		PlayerID  string            `json:"playerId"`
		Chips     int               `json:"chips"`
		HoleCards []json.RawMessage `json:"holeCards"`
	} `json:"seats"`
	Actions []json.RawMessage `json:"availableActions"`
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, nil, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

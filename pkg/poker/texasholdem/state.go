package texasholdem

import (
	"encoding/json"
	"fmt"
)

// SeatStatus is the state of a seat within the current hand
type SeatStatus int

// constants for SeatStatus
const (
	SeatActive SeatStatus = iota
	SeatFolded
	SeatAllIn
	// SeatSittingOut is reserved for seats that skip hands; no transition produces it yet
	SeatSittingOut
	SeatEliminated
)

func (s SeatStatus) String() string {
	switch s {
	case SeatActive:
		return "active"
	case SeatFolded:
		return "folded"
	case SeatAllIn:
		return "all_in"
	case SeatSittingOut:
		return "sitting_out"
	case SeatEliminated:
		return "eliminated"
	}

	panic(fmt.Sprintf("unknown seat status: %d", int(s)))
}

// MarshalJSON encodes the status by name
func (s SeatStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// inHand returns true if the seat can still win the pot
func (s SeatStatus) inHand() bool {
	switch s {
	case SeatActive, SeatAllIn:
		return true
	case SeatFolded, SeatSittingOut, SeatEliminated:
		return false
	}

	panic(fmt.Sprintf("unknown seat status: %d", int(s)))
}

// Round is the betting round
type Round int

// constants for Round
const (
	RoundPreFlop Round = iota
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
)

func (r Round) String() string {
	switch r {
	case RoundPreFlop:
		return "pre_flop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	case RoundShowdown:
		return "showdown"
	}

	panic(fmt.Sprintf("unknown round: %d", int(r)))
}

// MarshalJSON encodes the round by name
func (r Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// communityCardsToDeal returns how many cards are dealt when leaving the round
func (r Round) communityCardsToDeal() int {
	switch r {
	case RoundPreFlop:
		return 3
	case RoundFlop, RoundTurn:
		return 1
	case RoundRiver, RoundShowdown:
		return 0
	}

	panic(fmt.Sprintf("unknown round: %d", int(r)))
}

// Status is the lifecycle state of the table
type Status int

// constants for Status
const (
	StatusWaiting Status = iota
	StatusDealing
	StatusBetting
	StatusShowdown
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusDealing:
		return "dealing"
	case StatusBetting:
		return "betting"
	case StatusShowdown:
		return "showdown"
	case StatusComplete:
		return "complete"
	}

	panic(fmt.Sprintf("unknown table status: %d", int(s)))
}

// MarshalJSON encodes the status by name
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

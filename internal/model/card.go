package model

import (
	"fmt"
	"strings"
)

// CardSuit is the single-letter suit code used on the wire.
type CardSuit string

const (
	SuitClubs    CardSuit = "C"
	SuitDiamonds CardSuit = "D"
	SuitHearts   CardSuit = "H"
	SuitSpades   CardSuit = "S"
)

var cardSuits = map[CardSuit]struct{}{
	SuitClubs:    {},
	SuitDiamonds: {},
	SuitHearts:   {},
	SuitSpades:   {},
}

func ParseCardSuit(s string) (CardSuit, error) {
	suit := CardSuit(s)
	if _, ok := cardSuits[suit]; !ok {
		return "", fmt.Errorf("model: unknown card suit %q", s)
	}
	return suit, nil
}

// CardValue is the card rank as written on the wire ("2".."10", "J", "Q", "K", "A").
type CardValue string

const (
	ValueTwo   CardValue = "2"
	ValueThree CardValue = "3"
	ValueFour  CardValue = "4"
	ValueFive  CardValue = "5"
	ValueSix   CardValue = "6"
	ValueSeven CardValue = "7"
	ValueEight CardValue = "8"
	ValueNine  CardValue = "9"
	ValueTen   CardValue = "10"
	ValueJack  CardValue = "J"
	ValueQueen CardValue = "Q"
	ValueKing  CardValue = "K"
	ValueAce   CardValue = "A"
)

var cardValues = map[CardValue]struct{}{
	ValueTwo: {}, ValueThree: {}, ValueFour: {}, ValueFive: {},
	ValueSix: {}, ValueSeven: {}, ValueEight: {}, ValueNine: {},
	ValueTen: {}, ValueJack: {}, ValueQueen: {}, ValueKing: {}, ValueAce: {},
}

func ParseCardValue(s string) (CardValue, error) {
	val := CardValue(s)
	if _, ok := cardValues[val]; !ok {
		return "", fmt.Errorf("model: unknown card value %q", s)
	}
	return val, nil
}

// Card is one playing card. The wire form is "<suit>:<value>", e.g. "H:K".
type Card struct {
	Suit  CardSuit  `json:"suit"`
	Value CardValue `json:"value"`
}

func (c Card) String() string {
	return string(c.Suit) + ":" + string(c.Value)
}

// ParseCard parses the "<suit>:<value>" wire form.
func ParseCard(s string) (Card, error) {
	suitStr, valueStr, ok := strings.Cut(s, ":")
	if !ok {
		return Card{}, fmt.Errorf("model: malformed card %q", s)
	}
	suit, err := ParseCardSuit(suitStr)
	if err != nil {
		return Card{}, err
	}
	value, err := ParseCardValue(valueStr)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Value: value}, nil
}

// ParseHand parses a semicolon-joined card list such as "C:7;H:A".
// An empty string is an empty hand.
func ParseHand(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}
	parts := strings.Split(s, ";")
	hand := make([]Card, 0, len(parts))
	for _, part := range parts {
		card, err := ParseCard(part)
		if err != nil {
			return nil, err
		}
		hand = append(hand, card)
	}
	return hand, nil
}

// EncodeHand is the inverse of ParseHand.
func EncodeHand(hand []Card) string {
	parts := make([]string, 0, len(hand))
	for _, card := range hand {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, ";")
}

// Package roadmap turns the remote project board into the column/card snapshot
// the roadmap page renders, and keeps that snapshot cached.
package roadmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aryannaik/foundation-site/internal/fizzy"
)

// TriageColumn holds cards that are not assigned to any listed column.
const TriageColumn = "Triage"

// ErrNotConfigured is returned when the board settings are incomplete.
var ErrNotConfigured = errors.New("roadmap board is not configured")

// Card is the display shape of a board card.
type Card struct {
	ID     string   `json:"id"`
	Number int      `json:"number,omitempty"`
	Title  string   `json:"title"`
	Status string   `json:"status,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	URL    string   `json:"url,omitempty"`
}

// Column is one lane of the board. Count always equals len(Cards).
type Column struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Count int    `json:"count"`
	Cards []Card `json:"cards"`
}

// Board is a point-in-time snapshot of the remote board.
type Board struct {
	BoardID   string    `json:"boardId"`
	Columns   []Column  `json:"columns"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Source produces fresh board snapshots.
type Source interface {
	FetchBoard(ctx context.Context) (Board, error)
}

// Assemble groups cards under their columns, preserving the API's column and
// card order.
func Assemble(columns []fizzy.Column, cards []fizzy.Card) []Column {
	out := make([]Column, 0, len(columns)+1)
	pos := make(map[fizzy.ID]int, len(columns))
	for _, col := range columns {
		pos[col.ID] = len(out)
		out = append(out, Column{
			ID:    string(col.ID),
			Name:  col.Name,
			Color: col.Color,
			Cards: []Card{},
		})
	}

	var triage []Card
	for _, card := range cards {
		c := toCard(card)
		if card.Column != nil {
			if i, ok := pos[card.Column.ID]; ok {
				out[i].Cards = append(out[i].Cards, c)
				continue
			}
		}
		triage = append(triage, c)
	}

	if len(triage) > 0 {
		out = append([]Column{{Name: TriageColumn, Cards: triage}}, out...)
	}
	for i := range out {
		out[i].Count = len(out[i].Cards)
	}
	return out
}

func toCard(card fizzy.Card) Card {
	c := Card{
		ID:     string(card.ID),
		Number: card.Number,
		Title:  card.Title,
		Status: card.Status,
		URL:    card.URL,
	}
	if len(card.Tags) > 0 {
		c.Tags = append([]string(nil), card.Tags...)
	}
	return c
}

// FizzySource loads a board through the Fizzy API.
type FizzySource struct {
	client    *fizzy.Client
	boardID   string
	indexedBy string
	now       func() time.Time
}

func NewFizzySource(client *fizzy.Client, boardID, indexedBy string) *FizzySource {
	return &FizzySource{client: client, boardID: boardID, indexedBy: indexedBy, now: time.Now}
}

// FetchBoard loads columns and cards. Either call failing fails the snapshot.
func (s *FizzySource) FetchBoard(ctx context.Context) (Board, error) {
	columns, err := s.client.FetchColumns(ctx, s.boardID)
	if err != nil {
		return Board{}, fmt.Errorf("board %s: %w", s.boardID, err)
	}
	cards, err := s.client.FetchCards(ctx, s.boardID, s.indexedBy)
	if err != nil {
		return Board{}, fmt.Errorf("board %s: %w", s.boardID, err)
	}
	return Board{
		BoardID:   s.boardID,
		Columns:   Assemble(columns, cards),
		FetchedAt: s.now().UTC(),
	}, nil
}

// Package seed loads player records into the player store from CSV exports.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/squadbook/internal/domain/model"
)

// Parse errors.
var (
	ErrNoHeader      = errors.New("csv has no header row")
	ErrMissingColumn = errors.New("required column missing")
	ErrInvalidRow    = errors.New("invalid row")
)

type setter func(p *model.Player, v string) error

// columns maps header names, as used by the player collection, to setters.
var columns = map[string]setter{
	"Player_ID":       text(func(p *model.Player) *string { return &p.PlayerID }),
	"Name":            text(func(p *model.Player) *string { return &p.Name }),
	"Role":            text(func(p *model.Player) *string { return &p.Role }),
	"Department":      text(func(p *model.Player) *string { return &p.Department }),
	"Status":          text(func(p *model.Player) *string { return &p.Status }),
	"Year_of_Study":   integer(func(p *model.Player) *int { return &p.YearOfStudy }),
	"Matches_Played":  integer(func(p *model.Player) *int { return &p.MatchesPlayed }),
	"Runs_Scored":     integer(func(p *model.Player) *int { return &p.RunsScored }),
	"Wickets_Taken":   integer(func(p *model.Player) *int { return &p.WicketsTaken }),
	"Batting_Average": decimal(func(p *model.Player) *float64 { return &p.BattingAverage }),
	"Strike_Rate":     decimal(func(p *model.Player) *float64 { return &p.StrikeRate }),
	"Economy_Rate":    decimal(func(p *model.Player) *float64 { return &p.EconomyRate }),
}

var requiredColumns = []string{"Name", "Department"}

// ParsePlayers reads player rows from r. The first row is a header naming
// the columns; order is free and unknown columns are ignored. Blank numeric
// cells read as zero. Errors name the offending line.
func ParsePlayers(r io.Reader) ([]model.Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	setters := make([]setter, len(header))
	present := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if s, ok := columns[name]; ok {
			setters[i] = s
			present[name] = true
		}
	}
	for _, name := range requiredColumns {
		if !present[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var players []model.Player
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRow, err)
		}
		line, _ := cr.FieldPos(0)

		var p model.Player
		for i, value := range record {
			if setters[i] == nil {
				continue
			}
			if err := setters[i](&p, strings.TrimSpace(value)); err != nil {
				return nil, fmt.Errorf("%w: line %d: %s: %w", ErrInvalidRow, line, header[i], err)
			}
		}
		players = append(players, p)
	}
	return players, nil
}

func text(field func(*model.Player) *string) setter {
	return func(p *model.Player, v string) error {
		*field(p) = v
		return nil
	}
}

func integer(field func(*model.Player) *int) setter {
	return func(p *model.Player, v string) error {
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("not an integer: %q", v)
		}
		*field(p) = n
		return nil
	}
}

func decimal(field func(*model.Player) *float64) setter {
	return func(p *model.Player, v string) error {
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", v)
		}
		*field(p) = f
		return nil
	}
}

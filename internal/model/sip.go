package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSIP is returned for SIP configurations that fail validation.
var ErrInvalidSIP = errors.New("invalid sip configuration")

// Frequency is how often a recurring payment happens.
type Frequency string

// Frequency constants.
const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyHalfYearly Frequency = "half-yearly"
	FrequencyYearly     Frequency = "yearly"
)

// ParseFrequency matches s case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// PerYear is the number of occurrences in a year.
func (f Frequency) PerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyHalfYearly:
		return 2
	case FrequencyYearly:
		return 1
	}
	return 0
}

// SIPConfig is a recurring purchase instruction for one mutual fund.
// Absence of a config for a fund means no recurring purchase.
type SIPConfig struct {
	EndDate   *Date     `json:"end_date,omitempty"`
	FundCode  string    `json:"fund_code"`
	FundName  string    `json:"fund_name,omitempty"`
	Frequency Frequency `json:"frequency"`
	Amount    float64   `json:"amount"`
	Day       int       `json:"day"`
	Enabled   bool      `json:"enabled"`
}

// Validate checks the config. Day is a weekday (1-7) for weekly SIPs and a
// day of month (1-28) otherwise.
func (s SIPConfig) Validate() error {
	if s.FundCode == "" {
		return fmt.Errorf("%w: fund code is required", ErrInvalidSIP)
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidSIP)
	}
	switch s.Frequency {
	case FrequencyWeekly:
		if s.Day < 1 || s.Day > 7 {
			return fmt.Errorf("%w: weekly day must be 1-7, got %d", ErrInvalidSIP, s.Day)
		}
	case FrequencyMonthly, FrequencyQuarterly:
		if s.Day < 1 || s.Day > 28 {
			return fmt.Errorf("%w: day of month must be 1-28, got %d", ErrInvalidSIP, s.Day)
		}
	default:
		return fmt.Errorf("%w: unsupported frequency %q", ErrInvalidSIP, s.Frequency)
	}
	return nil
}

// SIPBook indexes SIP configs by fund code, holding at most one per fund.
type SIPBook struct {
	byFund map[string]SIPConfig
}

// NewSIPBook builds a book from configs; later entries replace earlier ones for the same fund.
func NewSIPBook(configs []SIPConfig) *SIPBook {
	b := &SIPBook{byFund: make(map[string]SIPConfig, len(configs))}
	for _, c := range configs {
		b.byFund[c.FundCode] = c
	}
	return b
}

// Upsert validates and stores cfg, replacing any config for the same fund.
func (b *SIPBook) Upsert(cfg SIPConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.byFund[cfg.FundCode] = cfg
	return nil
}

// Get returns the config for a fund.
func (b *SIPBook) Get(fundCode string) (SIPConfig, bool) {
	c, ok := b.byFund[fundCode]
	return c, ok
}

// Delete removes a fund's config. It reports whether one existed.
func (b *SIPBook) Delete(fundCode string) bool {
	_, ok := b.byFund[fundCode]
	delete(b.byFund, fundCode)
	return ok
}

// List returns configs sorted by fund code.
func (b *SIPBook) List() []SIPConfig {
	out := make([]SIPConfig, 0, len(b.byFund))
	for _, c := range b.byFund {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FundCode < out[j].FundCode })
	return out
}

// Len is the number of configured funds.
func (b *SIPBook) Len() int {
	return len(b.byFund)
}

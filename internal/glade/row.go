package glade

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	BalanceSize = 8
	EmailSize   = 64
	// RecordSize is the fixed width of a serialized row
	RecordSize  = BalanceSize + EmailSize
	RowsPerPage = PageSize / RecordSize

	emailPadding = ' '
)

type RowIndex uint64

type Row struct {
	Balance float64
	Email   string
}

// NewRow builds a row from its textual form: a numeric balance and an email
// wrapped in single or double quotes.
func NewRow(balance, email string) (Row, error) {
	value, err := parseBalance(balance)
	if err != nil {
		return Row{}, err
	}

	unquoted, ok := unquote(email)
	if !ok {
		return Row{}, fmt.Errorf("%w: email must be quoted, got %s", ErrInsert, email)
	}
	if strings.ContainsRune(unquoted, 0) {
		return Row{}, fmt.Errorf("%w: email cannot contain NUL bytes", ErrInsert)
	}

	return Row{
		Balance: value,
		Email:   truncateEmail(unquoted),
	}, nil
}

// parseBalance accepts decimal numbers only. NaN, infinities and hex floats
// are rejected since they do not survive a round trip as account balances.
func parseBalance(balance string) (float64, error) {
	if strings.ContainsAny(balance, "xX") {
		return 0, fmt.Errorf("%w: invalid balance %q", ErrInsert, balance)
	}
	value, err := strconv.ParseFloat(balance, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: invalid balance %q", ErrInsert, balance)
	}
	return value, nil
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '\'' && first != '"') {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// truncateEmail cuts the email to EmailSize bytes without splitting a rune.
func truncateEmail(email string) string {
	if len(email) <= EmailSize {
		return email
	}
	cut := EmailSize
	for cut > 0 && !utf8.RuneStart(email[cut]) {
		cut -= 1
	}
	return email[:cut]
}

func (r Row) Size() uint64 {
	return RecordSize
}

// Marshal writes the fixed width record: balance at [0,8), email at [8,72)
// padded with spaces. Longer emails are truncated.
func (r Row) Marshal(buf []byte) ([]byte, error) {
	size := r.Size()
	if uint64(cap(buf)) >= size {
		buf = buf[:size]
	} else {
		buf = make([]byte, size)
	}

	if strings.ContainsRune(r.Email, 0) {
		return nil, fmt.Errorf("%w: email cannot contain NUL bytes", ErrInsert)
	}

	marshalUint64(buf, math.Float64bits(r.Balance), 0)

	email := truncateEmail(r.Email)
	n := copy(buf[BalanceSize:], email)
	for i := BalanceSize + n; i < RecordSize; i++ {
		buf[i] = emailPadding
	}

	return buf, nil
}

func UnmarshalRow(buf []byte, aRow *Row) error {
	if len(buf) < RecordSize {
		return fmt.Errorf("%w: record needs %d bytes, got %d", errShortBuffer, RecordSize, len(buf))
	}

	aRow.Balance = math.Float64frombits(unmarshalUint64(buf, 0))
	aRow.Email = strings.TrimRight(string(buf[BalanceSize:RecordSize]), " \x00")

	return nil
}

// slotOccupied reports whether a record was ever written into the slot,
// written records always have a non zero email region.
func slotOccupied(buf []byte) bool {
	for _, b := range buf[BalanceSize:RecordSize] {
		if b != 0 {
			return true
		}
	}
	return false
}

func marshalUint32(buf []byte, n uint32, i uint64) []byte {
	buf[i+0] = byte(n >> 0)
	buf[i+1] = byte(n >> 8)
	buf[i+2] = byte(n >> 16)
	buf[i+3] = byte(n >> 24)
	return buf
}

func unmarshalUint32(buf []byte, i uint64) uint32 {
	return 0 |
		(uint32(buf[i+0]) << 0) |
		(uint32(buf[i+1]) << 8) |
		(uint32(buf[i+2]) << 16) |
		(uint32(buf[i+3]) << 24)
}

func marshalUint64(buf []byte, n, i uint64) []byte {
	buf[i+0] = byte(n >> 0)
	buf[i+1] = byte(n >> 8)
	buf[i+2] = byte(n >> 16)
	buf[i+3] = byte(n >> 24)
	buf[i+4] = byte(n >> 32)
	buf[i+5] = byte(n >> 40)
	buf[i+6] = byte(n >> 48)
	buf[i+7] = byte(n >> 56)
	return buf
}

func unmarshalUint64(buf []byte, i uint64) uint64 {
	return 0 | (uint64(buf[i+0]) << 0) |
		(uint64(buf[i+1]) << 8) |
		(uint64(buf[i+2]) << 16) |
		(uint64(buf[i+3]) << 24) |
		(uint64(buf[i+4]) << 32) |
		(uint64(buf[i+5]) << 40) |
		(uint64(buf[i+6]) << 48) |
		(uint64(buf[i+7]) << 56)
}

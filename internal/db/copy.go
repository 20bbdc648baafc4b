package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/attstats/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading AttendanceRows from
// a channel, so the producer and the COPY writer run concurrently.
type ChannelSource struct {
	ch      <-chan *model.AttendanceRow
	current *model.AttendanceRow
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.AttendanceRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"GearValue/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaker struct {
	snap *models.Snapshot
	err  error
}

func (s stubTaker) Snapshot(context.Context) (*models.Snapshot, error) { return s.snap, s.err }

type capturePublisher struct {
	got []*models.Snapshot
	err error
}

func (p *capturePublisher) Publish(_ context.Context, s *models.Snapshot) error {
	p.got = append(p.got, s)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func TestRunNowPublishes(t *testing.T) {
	snap := &models.Snapshot{ID: "1", Total: 5}
	pub := &capturePublisher{}
	s := New(stubTaker{snap: snap}, pub, time.Second, nil)

	require.NoError(t, s.RunNow(context.Background()))
	require.Len(t, pub.got, 1)
	assert.Same(t, snap, pub.got[0])
}

func TestRunNowSkipsPublishOnSnapshotError(t *testing.T) {
	pub := &capturePublisher{}
	s := New(stubTaker{err: errors.New("upstream down")}, pub, time.Second, nil)

	assert.Error(t, s.RunNow(context.Background()))
	assert.Empty(t, pub.got)
}

func TestRegister(t *testing.T) {
	s := New(stubTaker{}, &capturePublisher{}, 0, nil)

	assert.NoError(t, s.Register(""))
	assert.Empty(t, s.cron.Entries())

	assert.NoError(t, s.Register("0 */5 * * * *"))
	assert.Len(t, s.cron.Entries(), 1)

	assert.Error(t, s.Register("not a schedule"))
}

func TestTickKeepsRunningAfterFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	s := New(stubTaker{snap: &models.Snapshot{ID: "1"}}, pub, time.Second, nil)

	s.tick()
	s.tick()
	assert.Len(t, pub.got, 2)
}

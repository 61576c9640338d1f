package server

import (
	"context"
	"testing"
	"time"

	xhttp "GearValue/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderCloser struct {
	name  string
	order *[]string
}

func (c orderCloser) Close() error {
	*c.order = append(*c.order, c.name)
	return nil
}

func TestRunContextClosesResourcesInReverseOrder(t *testing.T) {
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(srv, nil, time.Second, nil)

	var order []string
	app.AddCloser("cache", orderCloser{name: "cache", order: &order})
	app.AddCloser("publisher", orderCloser{name: "publisher", order: &order})
	app.AddCloser("nil", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.RunContext(ctx))
	assert.Equal(t, []string{"publisher", "cache"}, order)
}

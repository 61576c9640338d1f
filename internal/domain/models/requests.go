package models

// Requests for the prices HTTP endpoints. Defined in domain for consistency and reuse.

type TimeseriesRequest struct {
	Timestep string `query:"timestep" json:"timestep" default:"5m" validate:"oneof=5m 1h 6h 24h 1d"`
}

type GroupTimeseriesRequest struct {
	Name     string `param:"name" json:"name" validate:"required"`
	Timestep string `query:"timestep" json:"timestep" default:"5m" validate:"oneof=5m 1h 6h 24h 1d"`
}

type ItemTimeseriesRequest struct {
	ID       int    `param:"id" json:"id" validate:"gt=0"`
	Timestep string `query:"timestep" json:"timestep" default:"5m" validate:"oneof=5m 1h 6h 24h 1d"`
}

package server

import (
	"github.com/sig-0/fcbrates/provider/firstbank"
	"github.com/sig-0/fcbrates/storage/types"
)

type SourcesResponse struct {
	Results []types.Source `json:"results"`
}

type CurrenciesResponse struct {
	Results []types.Currency `json:"results"`
}

type LiveRatesResponse struct {
	Base    types.Currency        `json:"base"`
	Results []firstbank.RateEntry `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Package testutils provides fixtures shared by tests.
package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/samwho/awair-prometheus-exporter/internal/utils"
	"github.com/samwho/awair-prometheus-exporter/model"
)

// AirDataPath is where the Awair local API serves the latest reading.
const AirDataPath = "/air-data/latest"

// Omit removes a key from the payload built by Payload.
var Omit = struct{}{}

// Reading returns a complete reading with a distinct value per field.
func Reading() *model.AirData {
	return &model.AirData{
		Timestamp:      utils.StrPtr("2024-03-01T12:00:00.000Z"),
		Score:          utils.I64Ptr(87),
		DewPoint:       utils.F64Ptr(9.25),
		Temp:           utils.F64Ptr(21.5),
		Humid:          utils.F64Ptr(45.31),
		AbsHumid:       utils.F64Ptr(8.72),
		CO2:            utils.I64Ptr(612),
		CO2Est:         utils.I64Ptr(598),
		CO2EstBaseline: utils.I64Ptr(35112),
		VOC:            utils.I64Ptr(243),
		VOCBaseline:    utils.I64Ptr(37829),
		VOCH2Raw:       utils.I64Ptr(26),
		VOCEthanolRaw:  utils.I64Ptr(38),
		PM25:           utils.I64Ptr(4),
		PM10Est:        utils.I64Ptr(5),
	}
}

// Values maps metric names to the values of Reading.
func Values() map[string]float64 {
	return map[string]float64{
		"awair_score":            87,
		"awair_dew_point":        9.25,
		"awair_temp":             21.5,
		"awair_humid":            45.31,
		"awair_abs_humid":        8.72,
		"awair_co2":              612,
		"awair_co2_est":          598,
		"awair_co2_est_baseline": 35112,
		"awair_voc":              243,
		"awair_voc_baseline":     37829,
		"awair_voc_h2_raw":       26,
		"awair_voc_ethanol_raw":  38,
		"awair_pm25":             4,
		"awair_pm10_est":         5,
	}
}

// Payload returns the JSON encoding of Reading with overrides applied.
// An override set to Omit drops the key.
func Payload(overrides map[string]any) []byte {
	raw, err := json.Marshal(Reading())
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}

	for k, v := range overrides {
		if v == Omit {
			delete(m, k)
			continue
		}
		m[k] = v
	}

	out, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return out
}

// NewDevice starts a fake Awair device that answers AirDataPath with status
// and body produced by next on every request.
func NewDevice(next func() (int, []byte)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != AirDataPath || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		status, body := next()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
}

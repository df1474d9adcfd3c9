// Package model contains core data types for the project.
package model

// AirData is a single reading returned by the Awair local API at /air-data/latest.
//
// Every field is a pointer so that a field absent from the payload can be told
// apart from a zero reading; all of them are required.
type AirData struct {
	Timestamp      *string  `json:"timestamp" validate:"required"`        // Reading time as reported by the device.
	Score          *int64   `json:"score" validate:"required"`            // Awair score, 0-100.
	DewPoint       *float64 `json:"dew_point" validate:"required"`        // Dew point, °C.
	Temp           *float64 `json:"temp" validate:"required"`             // Temperature, °C.
	Humid          *float64 `json:"humid" validate:"required"`            // Relative humidity, %.
	AbsHumid       *float64 `json:"abs_humid" validate:"required"`        // Absolute humidity, g/m³.
	CO2            *int64   `json:"co2" validate:"required"`              // CO2, ppm.
	CO2Est         *int64   `json:"co2_est" validate:"required"`          // Estimated CO2, ppm.
	CO2EstBaseline *int64   `json:"co2_est_baseline" validate:"required"` // Estimated CO2 sensor baseline.
	VOC            *int64   `json:"voc" validate:"required"`              // Total VOC, ppb.
	VOCBaseline    *int64   `json:"voc_baseline" validate:"required"`     // VOC sensor baseline.
	VOCH2Raw       *int64   `json:"voc_h2_raw" validate:"required"`       // Raw H2 signal of the VOC sensor.
	VOCEthanolRaw  *int64   `json:"voc_ethanol_raw" validate:"required"`  // Raw ethanol signal of the VOC sensor.
	PM25           *int64   `json:"pm25" validate:"required"`             // PM2.5, µg/m³.
	PM10Est        *int64   `json:"pm10_est" validate:"required"`         // Estimated PM10, µg/m³.
}

package entity

// Clave del ajuste de configuración para la tasa de cambio Bs/USD.
const SettingExchangeRate = "exchange_rate"

// Setting par clave/valor de configuración persistida.
type Setting struct {
	Key   string
	Value string
}

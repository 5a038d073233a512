package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the originating component under the key "component".
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}

// ClientIP records the resolved client address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// CardID records a card identifier under the key "card_id".
func CardID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("card_id", id)
}

// PredictionID records an external generation job identifier under the key
// "prediction_id".
func PredictionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("prediction_id", id)
}

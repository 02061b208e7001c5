package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	MapContainerID string
	CenterLat      float64
	CenterLng      float64
	DefaultZoom    float64
	MinZoom        float64
	MaxZoom        float64

	SSEHeartbeat time.Duration

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:       ":8080",
		MapContainerID: "service-map",
		CenterLat:      38.6270,
		CenterLng:      -90.1994,
		DefaultZoom:    12,
		MinZoom:        3,
		MaxZoom:        18,
		SSEHeartbeat:   15 * time.Second,
		OTELServiceName: "svcmap",
		OTLPInsecure:    true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	if v := os.Getenv("MAP_CONTAINER_ID"); v != "" {
		cfg.MapContainerID = v
	}
	if v := os.Getenv("MAP_CENTER_LAT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.CenterLat = f
		}
	}
	if v := os.Getenv("MAP_CENTER_LNG"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.CenterLng = f
		}
	}
	if v := os.Getenv("MAP_DEFAULT_ZOOM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.DefaultZoom = f
		}
	}
	if v := os.Getenv("MAP_MIN_ZOOM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.MinZoom = f
		}
	}
	if v := os.Getenv("MAP_MAX_ZOOM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.MaxZoom = f
		}
	}

	if v := os.Getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEHeartbeat = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	return cfg
}

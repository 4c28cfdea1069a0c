package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"soapstone/auth"
	"soapstone/domain"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

type Config struct {
	APIAddr   string        `envconfig:"SEED_API_ADDR" default:"http://localhost:8080"`
	Count     int           `envconfig:"SEED_COUNT" default:"40"`
	Latitude  float64       `envconfig:"SEED_LATITUDE" default:"48.8566"`
	Longitude float64       `envconfig:"SEED_LONGITUDE" default:"2.3522"`
	Spread    float64       `envconfig:"SEED_SPREAD" default:"0.0005"`
	OwnerID   string        `envconfig:"SEED_OWNER_ID" default:"TestUser"`
	SignKey   string        `envconfig:"JWT_SIGNING_KEY"`
	Timeout   time.Duration `envconfig:"SEED_TIMEOUT" default:"5s"`
	// SEED_COLOURS enables colorized output
	Colours bool `envconfig:"SEED_COLOURS" default:"true"`
}

type postMessageRequest struct {
	Message  domain.MessageContent `json:"message"`
	Location domain.Coordinate     `json:"location"`
}

// seed posts random valid messages around a point so a local API has data to serve.
func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid seed configuration:", err)
		os.Exit(1)
	}

	token := ""
	if cfg.SignKey != "" {
		var err error
		token, err = auth.GenerateToken(cfg.OwnerID, []byte(cfg.SignKey), time.Hour)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to sign token:", err)
			os.Exit(1)
		}
	}

	client := &http.Client{Timeout: cfg.Timeout}
	failures := 0
	for i := range cfg.Count {
		request := postMessageRequest{
			Message:  randomContent(),
			Location: randomCoordinate(cfg.Latitude, cfg.Longitude, cfg.Spread),
		}
		status, err := post(client, cfg.APIAddr, token, request)
		line := fmt.Sprintf("[%03d] %-50s %s", i+1, request.Message.String(), request.Location.String())
		if err != nil || status != http.StatusNoContent {
			failures++
			line = fmt.Sprintf("%s -> status=%d err=%v", line, status, err)
			if cfg.Colours {
				line = color.New(color.FgRed).Render(line)
			}
		} else if cfg.Colours {
			line = color.New(color.FgGreen).Render(line)
		}
		fmt.Println(line)
	}

	summary := fmt.Sprintf("  ====== %d posted, %d failed ======", cfg.Count-failures, failures)
	if cfg.Colours {
		summary = color.New(color.BgBlack, color.FgGreen).Render(summary)
	}
	fmt.Println(summary)
	if failures > 0 {
		os.Exit(1)
	}
}

func post(client *http.Client, addr, token string, request postMessageRequest) (int, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, addr+"/messages", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func randomContent() domain.MessageContent {
	content := domain.MessageContent{Phrase1: randomPhrase()}
	if rand.IntN(2) == 0 {
		phrase := randomPhrase()
		conjunction := lo.Sample(domain.Conjunctions())
		content.Phrase2 = &phrase
		content.Conjunction = &conjunction
	}
	return content
}

func randomPhrase() domain.Phrase {
	return domain.Phrase{
		Template: lo.Sample(domain.Templates()),
		Word:     lo.Sample(domain.Words()),
	}
}

func randomCoordinate(lat, lon, spread float64) domain.Coordinate {
	jitter := func() float64 { return (rand.Float64()*2 - 1) * spread }
	return domain.Coordinate{
		Latitude:  lo.Clamp(lat+jitter(), domain.MinLatitude, domain.MaxLatitude),
		Longitude: lo.Clamp(lon+jitter(), domain.MinLongitude, domain.MaxLongitude),
	}
}

package content

import (
	"math/rand"
)

// DefaultUserAgent is a desktop Chrome user agent, some sites serve stripped pages to bots
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// acceptLanguages contains common browser Accept-Language values, russian first as most sources are russian
var acceptLanguages = []string{
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"ru,en;q=0.9",
	"en-US,en;q=0.9,ru;q=0.8",
	"en-GB,en;q=0.9",
}

// browserHeaders returns common browser headers with some randomization.
// Accept-Encoding is left to the transport so compressed bodies are decoded transparently.
func browserHeaders() map[string]string {
	headers := map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           acceptLanguages[rand.Intn(len(acceptLanguages))], //nolint:gosec // non-cryptographic randomness is fine for header variation
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		headers["DNT"] = "1"
	}
	return headers
}

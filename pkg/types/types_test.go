package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBoundingBoxContains(t *testing.T) {
	spb := BoundingBox{North: 60.1, South: 59.7, West: 29.4, East: 30.8}

	cases := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"center", Coordinate{Lat: 59.93, Lng: 30.31}, true},
		{"south west corner", Coordinate{Lat: 59.7, Lng: 29.4}, true},
		{"north east corner", Coordinate{Lat: 60.1, Lng: 30.8}, true},
		{"moscow", Coordinate{Lat: 55.75, Lng: 37.61}, false},
		{"just east", Coordinate{Lat: 59.9, Lng: 30.81}, false},
	}
	for _, tc := range cases {
		if got := spb.Contains(tc.c); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate(" 59.987208, 30.445029 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 59.987208 || c.Lng != 30.445029 {
		t.Fatalf("unexpected coordinate %+v", c)
	}

	for _, raw := range []string{"", "59.9", "a,b", "91,0", "0,181"} {
		if _, err := ParseCoordinate(raw); err == nil {
			t.Fatalf("expected %q to fail", raw)
		}
	}
}

func TestSocialLinksNetworks(t *testing.T) {
	links := SocialLinks{VK: " https://vk.com/metall ", Telegram: "", WhatsApp: "https://wa.me/7999"}
	got := links.Networks()
	if len(got) != 2 {
		t.Fatalf("expected two networks, got %v", got)
	}
	if got[NetworkVK] != "https://vk.com/metall" {
		t.Fatalf("expected trimmed vk link, got %q", got[NetworkVK])
	}
	if _, ok := got[NetworkTelegram]; ok {
		t.Fatalf("empty telegram link should be skipped")
	}
}

func TestDateJSON(t *testing.T) {
	var got struct {
		Plain   Date `json:"plain"`
		Stamp   Date `json:"stamp"`
		Missing Date `json:"missing"`
	}
	payload := `{"plain":"2024-01-15","stamp":"2025-05-08T09:30:00Z","missing":""}`
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Plain.Year() != 2024 || got.Plain.Month() != time.January || got.Plain.Day() != 15 {
		t.Fatalf("unexpected plain date %v", got.Plain)
	}
	if got.Stamp.String() != "2025-05-08" {
		t.Fatalf("unexpected stamp date %q", got.Stamp.String())
	}
	if !got.Missing.IsZero() {
		t.Fatalf("empty string should decode to zero date")
	}

	out, err := json.Marshal(NewDate(2024, time.March, 20))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-03-20"` {
		t.Fatalf("unexpected encoding %s", out)
	}

	if err := json.Unmarshal([]byte(`"15.01.2024"`), &got.Plain); err == nil {
		t.Fatalf("expected unsupported layout to fail")
	}
}

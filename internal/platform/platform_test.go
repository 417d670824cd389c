package platform

import "testing"

func TestDetect_Classification(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		platform   Platform
		normalized string
	}{
		{
			name:       "youtube shorts",
			raw:        "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			platform:   YouTubeShort,
			normalized: "https://youtube.com/shorts/dQw4w9WgXcQ",
		},
		{
			name:       "youtu.be short link",
			raw:        "https://youtu.be/dQw4w9WgXcQ",
			platform:   YouTubeShort,
			normalized: "https://youtube.com/shorts/dQw4w9WgXcQ",
		},
		{
			name:       "mobile host with tracking params",
			raw:        "https://m.youtube.com/shorts/dQw4w9WgXcQ?si=xyz&feature=share",
			platform:   YouTubeShort,
			normalized: "https://youtube.com/shorts/dQw4w9WgXcQ",
		},
		{
			name:       "scheme omitted",
			raw:        "youtube.com/shorts/dQw4w9WgXcQ",
			platform:   YouTubeShort,
			normalized: "https://youtube.com/shorts/dQw4w9WgXcQ",
		},
		{
			name:       "tiktok canonical video",
			raw:        "https://www.tiktok.com/@some.user/video/7291234567890123456?is_from_webapp=1",
			platform:   TikTok,
			normalized: "https://tiktok.com/@some.user/video/7291234567890123456",
		},
		{
			name:       "tiktok share code",
			raw:        "https://vm.tiktok.com/ZMabcdef/",
			platform:   TikTok,
			normalized: "https://tiktok.com/t/ZMabcdef",
		},
		{
			name:       "tiktok t path",
			raw:        "https://www.tiktok.com/t/ZMabcdef",
			platform:   TikTok,
			normalized: "https://tiktok.com/t/ZMabcdef",
		},
		{
			name:       "instagram reel",
			raw:        "https://www.instagram.com/reel/Cx1yz_AbC2d/?igsh=track",
			platform:   InstagramReel,
			normalized: "https://instagram.com/reel/Cx1yz_AbC2d",
		},
		{
			name:       "instagram reels plural",
			raw:        "https://instagram.com/reels/Cx1yz_AbC2d",
			platform:   InstagramReel,
			normalized: "https://instagram.com/reel/Cx1yz_AbC2d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := Detect(tt.raw)
			if !det.Supported {
				t.Fatalf("Detect(%q) unsupported, want %s", tt.raw, tt.platform)
			}
			if det.Platform != tt.platform {
				t.Errorf("platform = %q, want %q", det.Platform, tt.platform)
			}
			if det.NormalizedURL != tt.normalized {
				t.Errorf("normalized = %q, want %q", det.NormalizedURL, tt.normalized)
			}
			if det.RawURL != tt.raw {
				t.Errorf("raw = %q, want %q", det.RawURL, tt.raw)
			}
		})
	}
}

func TestDetect_EquivalentSpellingsNormalizeIdentically(t *testing.T) {
	spellings := []string{
		"https://youtu.be/abc123XYZ",
		"https://www.youtube.com/shorts/abc123XYZ",
		"  youtube.com/shorts/abc123XYZ?si=tracker&utm_source=share  ",
		"https://m.youtube.com/shorts/abc123XYZ/",
	}
	want := Detect(spellings[0]).NormalizedURL
	if want == "" {
		t.Fatal("reference spelling did not normalize")
	}
	for _, s := range spellings[1:] {
		if got := Detect(s).NormalizedURL; got != want {
			t.Errorf("Detect(%q).NormalizedURL = %q, want %q", s, got, want)
		}
	}
}

func TestDetect_Deterministic(t *testing.T) {
	raw := "https://www.tiktok.com/@user/video/123456789"
	first := Detect(raw)
	for i := 0; i < 3; i++ {
		if got := Detect(raw); got != first {
			t.Fatalf("Detect not deterministic: %#v vs %#v", got, first)
		}
	}
}

func TestDetect_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not a url", "::::not a url::::"},
		{"plain text", "watch this video"},
		{"unknown host", "https://vimeo.com/12345678"},
		{"youtube watch page", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"youtube channel", "https://www.youtube.com/@creator"},
		{"tiktok profile", "https://www.tiktok.com/@some.user"},
		{"instagram profile", "https://www.instagram.com/some.user/"},
		{"shorts with bad id", "https://youtube.com/shorts/!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := Detect(tt.raw)
			if det.Supported {
				t.Errorf("Detect(%q) supported as %q, want unsupported", tt.raw, det.Platform)
			}
			if det.Platform != None {
				t.Errorf("platform = %q, want none", det.Platform)
			}
		})
	}
}

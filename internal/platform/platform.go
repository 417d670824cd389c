package platform

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform identifies a supported short-form video host.
type Platform string

const (
	TikTok        Platform = "tiktok"
	YouTubeShort  Platform = "youtube-short"
	InstagramReel Platform = "instagram-reel"
	None          Platform = ""
)

// Detection is the result of classifying a raw URL.
type Detection struct {
	RawURL        string
	NormalizedURL string
	Platform      Platform
	Supported     bool
}

var (
	youtubeIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	tiktokVideoPattern = regexp.MustCompile(`^/(@[\w.\-]+)/video/(\d+)`)
	tiktokShortPattern = regexp.MustCompile(`^/(?:t/)?([A-Za-z0-9]{6,})/?$`)
	instagramPattern   = regexp.MustCompile(`^/(?:reel|reels|p)/([A-Za-z0-9_-]{5,})`)
)

// Detect classifies a raw URL and produces its canonical normalized form.
// It is pure and never performs network lookups: short-link hosts are
// resolved to their long form by pattern only. Anything that cannot be
// classified comes back with Supported=false rather than an error.
func Detect(raw string) Detection {
	det := Detection{RawURL: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return det
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return det
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		return detectYouTube(det, u)
	case "youtu.be":
		// Short-link host: youtu.be/<id> is the same content as
		// youtube.com/shorts/<id>, so both normalize to the long form.
		id := strings.Trim(u.Path, "/")
		if youtubeIDPattern.MatchString(id) {
			return classified(det, YouTubeShort, "https://youtube.com/shorts/"+id)
		}
		return det
	case "tiktok.com":
		return detectTikTok(det, u)
	case "vm.tiktok.com", "vt.tiktok.com":
		// TikTok share codes cannot be expanded to the @user/video form
		// without a network round trip; the code itself is stable, so it
		// serves as the canonical key.
		code := strings.Trim(u.Path, "/")
		if tiktokShortPattern.MatchString("/" + code) {
			return classified(det, TikTok, "https://tiktok.com/t/"+code)
		}
		return det
	case "instagram.com", "instagr.am":
		if m := instagramPattern.FindStringSubmatch(u.Path); m != nil {
			return classified(det, InstagramReel, "https://instagram.com/reel/"+m[1])
		}
		return det
	}

	return det
}

func detectYouTube(det Detection, u *url.URL) Detection {
	path := u.Path
	if strings.HasPrefix(path, "/shorts/") {
		id := strings.Trim(strings.TrimPrefix(path, "/shorts/"), "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if youtubeIDPattern.MatchString(id) {
			return classified(det, YouTubeShort, "https://youtube.com/shorts/"+id)
		}
	}
	return det
}

func detectTikTok(det Detection, u *url.URL) Detection {
	if m := tiktokVideoPattern.FindStringSubmatch(u.Path); m != nil {
		return classified(det, TikTok, "https://tiktok.com/"+m[1]+"/video/"+m[2])
	}
	if strings.HasPrefix(u.Path, "/t/") {
		code := strings.Trim(strings.TrimPrefix(u.Path, "/t/"), "/")
		if tiktokShortPattern.MatchString("/" + code) {
			return classified(det, TikTok, "https://tiktok.com/t/"+code)
		}
	}
	return det
}

// classified fills in the supported fields. Tracking parameters never
// survive normalization because the canonical form is rebuilt from the
// matched path components alone.
func classified(det Detection, p Platform, normalized string) Detection {
	det.Platform = p
	det.NormalizedURL = normalized
	det.Supported = true
	return det
}

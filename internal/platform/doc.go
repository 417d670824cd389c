// Package platform classifies raw short-form video URLs.
//
// Detect is pure and synchronous: it recognizes the TikTok, YouTube
// Shorts, and Instagram Reels URL families by pattern, strips tracking
// noise, and rebuilds a canonical normalized URL that the rest of the
// application uses as the idempotency key for job lookup. Equivalent
// spellings of the same video (youtu.be/X, youtube.com/shorts/X,
// m.youtube.com/shorts/X?si=...) all normalize to the same string.
//
// No network resolution happens here. Share-code hosts that genuinely
// require a redirect to expand (vm.tiktok.com) are normalized around the
// stable share code instead.
package platform

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"elearn/config"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// SignedVideoURL resolves a module's storage key into a time-limited playback
// URL. The URL is opaque to the rest of the application and never cached.
func SignedVideoURL(videoKey string) (string, error) {
	ttl := config.AppConfig.VideoURLTTL

	// No storage service configured: sign locally
	if config.AppConfig.StorageServiceURL == "" {
		return localSignedURL(videoKey, ttl), nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.StorageApiKey).
		SetBody(map[string]interface{}{
			"path":       videoKey,
			"expires_in": ttl,
		}).
		Post(config.AppConfig.StorageServiceURL + "/sign")
	if err != nil {
		log.Printf("Failed to request signed URL for %s: %v", videoKey, err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Storage service sign failed: %s", resp.String())
		return "", fmt.Errorf("storage service sign failed, code: %d", resp.StatusCode())
	}

	var signResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &signResp); err != nil {
		log.Printf("Failed to parse sign response: %v", err)
		return "", err
	}
	if signResp.URL == "" {
		return "", fmt.Errorf("storage service returned empty URL")
	}

	return signResp.URL, nil
}

// localSignedURL builds an HMAC-signed /media URL served by the app itself
func localSignedURL(videoKey string, ttl int) string {
	expires := time.Now().Add(time.Duration(ttl) * time.Second).Unix()

	mac := hmac.New(sha256.New, []byte(config.AppConfig.StorageSignSecret))
	fmt.Fprintf(mac, "%s:%d", videoKey, expires)
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("/media/%s?expires=%d&signature=%s", videoKey, expires, signature)
}

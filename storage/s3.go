package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Media uploads (invoice logos, guest ID scans) go to Cloudinary via signed
// HTTP uploads. Configured with CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET and optional CLOUDINARY_FOLDER.

func InitializeMedia() {}

// UploadBase64Image uploads a data-URL or bare base64 payload under the given
// public ID and returns the hosted URL, or "" on any failure.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		log.Println("upload: empty base64 image")
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("upload: missing Cloudinary credentials")
		return ""
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Cloudinary signed uploads require a SHA1 over the sorted params + secret.
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
	form.Add("signature", signature)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("upload: failed to build request: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("upload: request failed: %v", err)
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("upload: failed to read response: %v", err)
		return ""
	}

	if res.StatusCode != 200 {
		log.Printf("upload: cloudinary returned %d: %s", res.StatusCode, string(body))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &cloudRes); err != nil {
		log.Printf("upload: failed to parse response: %v", err)
		return ""
	}
	if cloudRes.Error.Message != "" {
		log.Printf("upload: cloudinary error: %s", cloudRes.Error.Message)
		return ""
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL
	}
	return cloudRes.URL
}

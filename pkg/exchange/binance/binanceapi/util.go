package binanceapi

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// GenerateSignatureEd25519 generates a signature for the given string with the provided private key.
func GenerateSignatureEd25519(paramString string, privateKey ed25519.PrivateKey) string {
	signatureBytes := ed25519.Sign(privateKey, []byte(paramString))
	signature := base64.StdEncoding.EncodeToString(signatureBytes)
	return signature
}

// GenerateSignatureHmacSHA256 signs the total params string with the api secret, hex encoded.
func GenerateSignatureHmacSHA256(paramString string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	// hash.Hash writes never fail
	_, _ = mac.Write([]byte(paramString))
	return hex.EncodeToString(mac.Sum(nil))
}

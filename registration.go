package tokebi

import (
	"encoding/json"
)

// RegistrationResult is the outcome of a game registration attempt.
type RegistrationResult struct {
	Success         bool
	CanonicalGameID string
}

// registrationRequest is the body of a POST /api/games request.
type registrationRequest struct {
	GameName        string `json:"gameName"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	PlayerCount     int    `json:"playerCount"`
}

// RegistrationClient exchanges the configured game identity for the
// server-assigned canonical game id. Registration is a correction layer, not
// a delivery precondition: on any failure the configured id stays
// authoritative and events keep flowing.
type RegistrationClient struct {
	delivery *DeliveryClient
	logger   LoggerAdapter
}

// NewRegistrationClient creates a RegistrationClient on top of the delivery
// client.
func NewRegistrationClient(delivery *DeliveryClient, logger LoggerAdapter) *RegistrationClient {
	return &RegistrationClient{delivery: delivery, logger: logger}
}

// Register submits the registration payload and yields exactly one result.
// Success requires a 200/201 response carrying a game_id field; a well-formed
// response without one counts as failure.
func (rc *RegistrationClient) Register(gameName, platform, platformVersion string) <-chan RegistrationResult {
	out := make(chan RegistrationResult, 1)

	body := registrationRequest{
		GameName:        gameName,
		Platform:        platform,
		PlatformVersion: platformVersion,
		PlayerCount:     1,
	}

	resultCh := rc.delivery.Send(registerPath, body)
	go func() {
		result := <-resultCh
		if !result.Success || (result.Status != 200 && result.Status != 201) {
			rc.logger.Warn("Game registration failed, status %d: %s", result.Status, result.Body)
			out <- RegistrationResult{}
			return
		}

		var resp struct {
			GameID string `json:"game_id"`
		}
		if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
			rc.logger.Warn("Failed to parse registration response: %v", err)
			out <- RegistrationResult{}
			return
		}
		if resp.GameID == "" {
			rc.logger.Warn("No game_id field in registration response")
			out <- RegistrationResult{}
			return
		}

		rc.logger.Info("Game registration successful, canonical game ID: %s", resp.GameID)
		out <- RegistrationResult{Success: true, CanonicalGameID: resp.GameID}
	}()

	return out
}

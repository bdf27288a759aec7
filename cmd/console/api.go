package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwright-games/worldweaver/pkg/adventure"
)

type turnResponse struct {
	Session *adventure.Session `json:"session"`
	Event   *adventure.Event   `json:"event,omitempty"`
}

type worldListResponse struct {
	Worlds []string `json:"worlds"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listWorlds(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/worlds")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "failed to list worlds")
	}

	var listResp worldListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to parse world list response: %w", err)
	}
	return listResp.Worlds, nil
}

func getSession(client *http.Client, baseURL string, worldName string) (*adventure.Session, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/adventure/%s", baseURL, worldName))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "failed to get session")
	}

	var sess adventure.Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &sess, nil
}

func startAdventure(client *http.Client, baseURL string, worldName string) (*adventure.Session, error) {
	resp, err := client.Post(
		fmt.Sprintf("%s/v1/adventure/%s/start", baseURL, worldName),
		"application/json",
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp.StatusCode, body, "failed to start adventure")
	}

	var turnResp turnResponse
	if err := json.Unmarshal(body, &turnResp); err != nil {
		return nil, fmt.Errorf("failed to parse start response: %w", err)
	}
	return turnResp.Session, nil
}

func playTurn(client *http.Client, baseURL string, worldName string, input string) (*adventure.Session, *adventure.Event, error) {
	jsonData, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/adventure/%s/turn", baseURL, worldName),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, apiError(resp.StatusCode, body, "turn failed")
	}

	var turnResp turnResponse
	if err := json.Unmarshal(body, &turnResp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse turn response: %w", err)
	}
	return turnResp.Session, turnResp.Event, nil
}

func apiError(status int, body []byte, action string) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s: %s", action, errorResp.Error)
}

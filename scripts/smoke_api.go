// Command smoke_api walks a running server through the main user journey.
//
//	go run ./scripts -base http://localhost:3000/api
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

var baseURL string

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, map[string]interface{}, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Model calls can be slow; no client timeout.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp, out, nil
}

func step(title string, method, url, token string, body interface{}) map[string]interface{} {
	color.Yellow("\n%s", title)
	resp, out, err := sendRequest(method, url, token, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(out)
	return out
}

func main() {
	flag.StringVar(&baseURL, "base", "http://localhost:3000/api", "API base URL")
	query := flag.String("q", "introductory machine learning textbooks", "question to ask")
	flag.Parse()

	color.Cyan("Starting EduEase API smoke test against %s", baseURL)

	step("1. Stateless resource query", "POST", "/scholar-gpt", "", map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": "scholar"},
			{"role": "user", "content": *query},
		},
		"userPrompt": *query,
	})

	created := step("2. Create session", "POST", "/session/v1", "", map[string]string{"name": "Smoke Tester"})
	data, _ := created["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		color.Red("No session token returned")
		os.Exit(1)
	}

	sent := step("3. Ask within the session", "POST", "/session/v1/messages", token, map[string]string{"input": *query})

	var first map[string]interface{}
	if d, ok := sent["data"].(map[string]interface{}); ok {
		if msgs, ok := d["messages"].([]interface{}); ok && len(msgs) == 2 {
			reply, _ := msgs[1].(map[string]interface{})
			if list, ok := reply["content"].([]interface{}); ok && len(list) > 0 {
				first, _ = list[0].(map[string]interface{})
			}
		}
	}
	if first == nil {
		color.Red("No resource in reply, stopping")
		return
	}

	step("4. Save first resource (bootstrap)", "POST", "/session/v1/collections/save", token, map[string]interface{}{
		"resource":   first,
		"collection": "Reading List",
	})
	step("5. Expand it", "POST", "/session/v1/expand", token, map[string]interface{}{"resource": first})
	step("6. List collections", "GET", "/session/v1/collections", token, nil)
	step("7. Log out", "DELETE", "/session/v1/identity", token, nil)

	color.Cyan("\nDone.")
}

// Command admin is the operator CLI for a running bot instance. It talks to
// the admin HTTP API; the target address comes from MODBOT_API (default
// http://localhost:8080) and the admin key from ADMIN_KEY.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
)

func main() {
	base := os.Getenv("MODBOT_API")
	if base == "" {
		base = "http://localhost:8080"
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: status | ledger | queue <guild_id> | rearm <author_id>")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "status":
		printJSON(get(base + "/status"))
	case "ledger":
		printJSON(get(base + "/ledger"))
	case "queue":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin queue <guild_id>")
			os.Exit(1)
		}
		printJSON(get(base + "/queue/" + url.PathEscape(os.Args[2])))
	case "rearm":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin rearm <author_id>")
			os.Exit(1)
		}
		authorID := os.Args[2]
		token := fetchToken(base)
		req, err := http.NewRequest(http.MethodPost, base+"/ledger/"+url.PathEscape(authorID)+"/rearm", nil)
		if err != nil {
			log.Fatalf("Error building request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Fatalf("Error re-arming author: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			log.Fatalf("Re-arm failed (%d): %s", resp.StatusCode, body)
		}
		fmt.Printf("Author %s has been re-armed.\n", authorID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func fetchToken(base string) string {
	key := os.Getenv("ADMIN_KEY")
	if key == "" {
		log.Fatal("ADMIN_KEY is not set")
	}
	body := get(base + "/token?key=" + url.QueryEscape(key))
	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Token == "" {
		log.Fatalf("Failed to obtain admin token: %s", body)
	}
	return parsed.Token
}

func get(endpoint string) []byte {
	resp, err := http.Get(endpoint)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Read failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Request failed (%d): %s", resp.StatusCode, body)
	}
	return body
}

func printJSON(body []byte) {
	var buf any
	if err := json.Unmarshal(body, &buf); err != nil {
		fmt.Println(string(body))
		return
	}
	pretty, _ := json.MarshalIndent(buf, "", "  ")
	fmt.Println(string(pretty))
}

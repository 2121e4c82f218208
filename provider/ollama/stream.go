package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	groto "github.com/Ritam-910/groto"
)

// ChatStream streams the reply as incremental text chunks into ch and
// returns the fully accumulated text. The channel is closed on every
// return path; callers should read from ch in a separate goroutine.
//
// Ollama streams NDJSON: one chatResponse object per line, with
// "done": true on the final line.
func (c *Client) ChatStream(ctx context.Context, req groto.ChatRequest, ch chan<- string) (string, error) {
	resp, err := c.sendChat(ctx, req, true)
	if err != nil {
		close(ch)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		close(ch)
		return "", httpErr(resp)
	}

	return streamNDJSON(ctx, resp, ch)
}

// streamNDJSON reads NDJSON chat chunks from the response body,
// forwarding each content fragment to ch.
func streamNDJSON(ctx context.Context, resp *http.Response, ch chan<- string) (string, error) {
	defer close(ch)

	scanner := bufio.NewScanner(resp.Body)
	// Increase buffer for large chunks.
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var full strings.Builder
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			// Skip malformed lines.
			continue
		}

		if chunk.Message.Content != "" {
			full.WriteString(chunk.Message.Content)
			select {
			case ch <- chunk.Message.Content:
			case <-ctx.Done():
				return full.String(), ctx.Err()
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), &groto.ErrModel{Provider: providerName, Message: "read stream: " + err.Error()}
	}
	return full.String(), nil
}

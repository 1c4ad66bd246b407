package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type flagEvent struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	SpamScore  float64 `json:"spam_score"`
	Reason     string  `json:"reason"`
}

func main() {
	http.HandleFunc("/api/flags", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		var event flagEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			log.Printf("[Moderation] Bad flag payload: %v", err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		log.Printf("[Moderation] Flagged %s %s (spam %.2f): %s",
			event.EntityType, event.EntityID, event.SpamScore, event.Reason)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Moderation] Health write error: %v", err)
		}
	})

	log.Println("Mock Moderation running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// A simple struct to capture the incoming change data
type Change struct {
	EntryID string `json:"entryId"`
	Deleted bool   `json:"deleted"`
	Entry   *struct {
		ID       string     `json:"id"`
		ClockIn  time.Time  `json:"clockIn"`
		ClockOut *time.Time `json:"clockOut"`
		Notes    string     `json:"notes"`
	} `json:"entry"`
}

func changeHandler(w http.ResponseWriter, r *http.Request) {
	var change Change
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if change.Deleted {
		log.Printf("Received tombstone for entry %s", change.EntryID)
	} else {
		log.Printf("Received change for entry %s", change.EntryID)
	}
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", changeHandler)
	log.Println("Sync gateway mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}

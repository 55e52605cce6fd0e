package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status      HealthStatus     `json:"status"`
	Time        Timestamp        `json:"time"`
	Producers   []ProducerStatus `json:"producers"`
	ActiveFlags []string         `json:"activeFlags,omitempty"`
}

// ProducerStatus represents the status of one refresh producer.
type ProducerStatus struct {
	Name          string       `json:"name"`
	Status        HealthStatus `json:"status"`
	Running       bool         `json:"running"`
	IntervalMs    int64        `json:"intervalMs"`
	LastUpdatedAt *Timestamp   `json:"lastUpdatedAt,omitempty"`
	Refreshes     int64        `json:"refreshes"`
	Failures      int64        `json:"failures"`
	Skipped       int64        `json:"skipped"`
	Message       *string      `json:"message,omitempty"`
}

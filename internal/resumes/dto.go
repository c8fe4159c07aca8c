package resumes

import (
	"fmt"
	"time"
)

// Card is the list representation of a saved resume.
type Card struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	FileSize  string    `json:"fileSize"`
	Status    string    `json:"status"`
}

// DetailResponse is a card together with the stored document.
type DetailResponse struct {
	Card
	Document Document `json:"document"`
}

func toCard(r Resume) Card {
	return Card{
		ID:        r.ID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		FileSize:  humanSize(r.SizeBytes),
		Status:    r.Status,
	}
}

// humanSize formats a byte count for display, e.g. "512 B" or "1.4 KB".
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 3; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

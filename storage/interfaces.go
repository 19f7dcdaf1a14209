package storage

import "talent-scraper/models"

// ListingWriter is the interface any storage backend must satisfy. The
// canonical JobListing is the unit of exchange; backends own nothing else.
type ListingWriter interface {
	Write(listings []*models.JobListing) error
	Close() error
}

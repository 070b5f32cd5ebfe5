package service

import (
	"context"
	"time"

	"github.com/cartsight/scanner/internal/logging"
	"github.com/cartsight/scanner/internal/scanner"
)

// Service provides the business logic layer for checkout scanning.
// It sits between the HTTP transport layer and the scan engine.
type Service struct {
	scanner     *scanner.Scanner
	logger      *logging.Logger
	scanTimeout time.Duration
}

// New creates a new Service instance
func New(sc *scanner.Scanner, logger *logging.Logger, scanTimeout time.Duration) *Service {
	return &Service{
		scanner:     sc,
		logger:      logger,
		scanTimeout: scanTimeout,
	}
}

// ScanURL runs a full checkout scan for the given target URL.
// This is the main entry point for the scanning use case.
func (s *Service) ScanURL(ctx context.Context, url string) (*scanner.ScanReport, error) {
	// Bound the whole scan so a hung fetch cannot hang the request forever.
	ctx, cancel := context.WithTimeout(ctx, s.scanTimeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("Scanning URL", "url", url)

	report, err := s.scanner.Scan(ctx, url)
	if err != nil {
		s.logger.Error("Scan rejected", "url", url, "error", err)
		return nil, err
	}

	s.logger.Info("Scan completed",
		"url", url,
		"scripts", report.Summary.TotalScripts,
		"matches", report.Summary.TotalMatches,
		"likely_has_checkout", report.Summary.LikelyHasCheckout,
		"errors", len(report.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}

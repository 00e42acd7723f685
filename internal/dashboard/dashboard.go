package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/repository"
	"lacajita-admin/internal/repository/model"
)

// UserSource is the slice of the identity provider client the dashboard
// needs.
type UserSource interface {
	GetUsers(ctx context.Context, page int, perPage int) ([]idp.User, error)
}

type CustomersSummary struct {
	Total        int `json:"total"`
	ActiveLast30 int `json:"active_last_30d"`
	NewLast30    int `json:"new_last_30d"`
	Blocked      int `json:"blocked"`
	Verified     int `json:"verified"`
	Unverified   int `json:"unverified"`
}

type LoginStats struct {
	TotalLogins       int64   `json:"total_logins"`
	AvgLoginsPerUser  float64 `json:"avg_logins_per_user"`
	Last7DaysEstimate int64   `json:"last_7d_logins_estimate"`
	UsersWithNoLogins int     `json:"users_with_0_logins"`
}

type SystemSummary struct {
	UsersTotal    int   `json:"users_total"`
	UsersVerified int   `json:"users_verified"`
	UsersBlocked  int   `json:"users_blocked"`
	Playlists     int64 `json:"playlists"`
	Videos        int64 `json:"videos"`
	Seasons       int64 `json:"seasons"`
}

type Demographics struct {
	ByDomain           map[string]int `json:"by_domain"`
	ByIdentityProvider map[string]int `json:"by_identity_provider"`
	SignupsByMonth     map[string]int `json:"signups_by_month"`
	ByCountry          map[string]int `json:"by_country,omitempty"`
}

// Service assembles dashboard read models from the identity provider and the
// content repository. All methods are pure reads.
type Service struct {
	logger *zap.SugaredLogger
	users  UserSource
	repo   repository.Repository
}

func NewService(logger *zap.SugaredLogger, users UserSource, repo repository.Repository) *Service {
	return &Service{
		logger: logger,
		users:  users,
		repo:   repo,
	}
}

const userPageSize = 100

// fetchAllUsers pages through the provider's user list. The panel's tenant
// stays in the hundreds of accounts, so this is a handful of requests.
func (s *Service) fetchAllUsers(ctx context.Context) ([]idp.User, error) {
	var all []idp.User
	for page := 0; ; page++ {
		users, err := s.users.GetUsers(ctx, page, userPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch users: %w", err)
		}
		all = append(all, users...)
		if len(users) < userPageSize {
			return all, nil
		}
	}
}

func (s *Service) CustomersSummary(ctx context.Context) (*CustomersSummary, error) {
	users, err := s.fetchAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	summary := &CustomersSummary{Total: len(users)}
	for _, user := range users {
		if user.Blocked {
			summary.Blocked++
		}
		if user.EmailVerified {
			summary.Verified++
		} else {
			summary.Unverified++
		}
		if user.LastLogin != nil && !user.LastLogin.Before(cutoff) {
			summary.ActiveLast30++
		}
		if !user.CreatedAt.IsZero() && !user.CreatedAt.Before(cutoff) {
			summary.NewLast30++
		}
	}

	return summary, nil
}

func (s *Service) LoginStats(ctx context.Context) (*LoginStats, error) {
	users, err := s.fetchAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &LoginStats{}
	for _, user := range users {
		stats.TotalLogins += user.LoginsCount
		if user.LoginsCount == 0 {
			stats.UsersWithNoLogins++
		}
	}

	divisor := len(users)
	if divisor == 0 {
		divisor = 1
	}
	stats.AvgLoginsPerUser = math.Round(float64(stats.TotalLogins)/float64(divisor)*100) / 100

	// The provider exposes no login log on this plan; assume a fifth of all
	// logins happened in the last week.
	stats.Last7DaysEstimate = int64(float64(stats.TotalLogins) * 0.2)

	return stats, nil
}

// SystemSummary fans out to the identity provider and the content database
// concurrently and joins both counts.
func (s *Service) SystemSummary(ctx context.Context) (*SystemSummary, error) {
	var (
		users  []idp.User
		counts *model.ContentCounts

		usersErr  error
		countsErr error
	)

	done := make(chan struct{}, 2)
	go func() {
		users, usersErr = s.fetchAllUsers(ctx)
		done <- struct{}{}
	}()
	go func() {
		counts, countsErr = s.repo.CountContent(ctx)
		done <- struct{}{}
	}()
	<-done
	<-done

	if usersErr != nil {
		return nil, usersErr
	}
	if countsErr != nil {
		return nil, fmt.Errorf("failed to count content: %w", countsErr)
	}

	summary := &SystemSummary{
		UsersTotal: len(users),
		Playlists:  counts.Playlists,
		Videos:     counts.Videos,
		Seasons:    counts.Seasons,
	}
	for _, user := range users {
		if user.EmailVerified {
			summary.UsersVerified++
		}
		if user.Blocked {
			summary.UsersBlocked++
		}
	}

	return summary, nil
}

func (s *Service) Demographics(ctx context.Context) (*Demographics, error) {
	users, err := s.fetchAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	demo := &Demographics{
		ByDomain:           map[string]int{},
		ByIdentityProvider: map[string]int{},
		SignupsByMonth:     map[string]int{},
	}
	byCountry := map[string]int{}

	for _, user := range users {
		email := strings.ToLower(user.Email)
		if _, domain, ok := strings.Cut(email, "@"); ok {
			demo.ByDomain[domain]++
		}

		for _, identity := range user.Identities {
			provider := identity.Provider
			if provider == "" {
				provider = "unknown"
			}
			demo.ByIdentityProvider[provider]++
		}

		if !user.CreatedAt.IsZero() {
			demo.SignupsByMonth[user.CreatedAt.UTC().Format("2006-01")]++
		}

		if iso := countryOf(user); iso != "" {
			byCountry[iso]++
		}
	}

	if len(byCountry) > 0 {
		demo.ByCountry = byCountry
	}

	return demo, nil
}

func (s *Service) VideoConsumption(ctx context.Context, days int) (*model.VideoConsumptionStats, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	stats, err := s.repo.GetVideoConsumption(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate video consumption: %w", err)
	}
	return stats, nil
}

// countryNames maps the free-text country values seen in user metadata to
// ISO2 codes.
var countryNames = map[string]string{
	"united states": "US", "usa": "US", "us": "US", "estados unidos": "US",
	"mexico": "MX", "méxico": "MX", "mx": "MX",
	"spain": "ES", "españa": "ES", "es": "ES",
	"france": "FR", "fr": "FR",
	"argentina": "AR", "ar": "AR",
	"colombia": "CO", "co": "CO",
	"chile": "CL", "cl": "CL",
	"peru": "PE", "perú": "PE",
	"dominican republic": "DO", "república dominicana": "DO", "do": "DO",
	"brazil": "BR", "brasil": "BR", "br": "BR",
	"uk": "GB", "united kingdom": "GB", "reino unido": "GB",
	"germany": "DE", "deutschland": "DE", "de": "DE",
	"italy": "IT", "italia": "IT", "it": "IT",
	"canada": "CA", "ca": "CA",
}

var tldCountries = map[string]string{
	"us": "US", "mx": "MX", "es": "ES", "fr": "FR", "co": "CO", "ar": "AR",
	"cl": "CL", "pe": "PE", "do": "DO", "br": "BR", "uk": "GB", "gb": "GB",
	"de": "DE", "it": "IT", "ca": "CA",
}

// countryOf guesses a user's ISO2 country from metadata, falling back to the
// email TLD. Returns "" when nothing matches.
func countryOf(user idp.User) string {
	for _, source := range []map[string]any{user.UserMetadata, user.AppMetadata} {
		if source == nil {
			continue
		}
		for _, key := range []string{"country_code", "countryCode", "country_iso2"} {
			if code, ok := source[key].(string); ok {
				code = strings.TrimSpace(code)
				if len(code) == 2 {
					return strings.ToUpper(code)
				}
			}
		}
		for _, key := range []string{"country", "location", "locale_country"} {
			if name, ok := source[key].(string); ok {
				if iso, ok := countryNames[strings.ToLower(strings.TrimSpace(name))]; ok {
					return iso
				}
			}
		}
	}

	email := strings.ToLower(user.Email)
	if _, domain, ok := strings.Cut(email, "@"); ok {
		if idx := strings.LastIndex(domain, "."); idx >= 0 {
			if iso, ok := tldCountries[domain[idx+1:]]; ok {
				return iso
			}
		}
	}
	return ""
}

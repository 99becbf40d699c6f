package service

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"podium/client"
	"podium/metrics"
	"podium/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const syncInterval = time.Hour

// MeetingBundle pairs the race session of one meeting with its qualifying
// session, when the calendar has one.
type MeetingBundle struct {
	MeetingKey int
	Race       *client.OpenF1Session
	Qualifying *client.OpenF1Session
}

type SyncService struct {
	raceRepository *repository.RaceRepository
	openF1Client   *client.OpenF1Client

	mu         sync.Mutex
	lastSyncAt map[int]time.Time
}

func NewSyncService(db *gorm.DB, openF1Client *client.OpenF1Client) *SyncService {
	return &SyncService{
		raceRepository: repository.NewRaceRepository(db),
		openF1Client:   openF1Client,
		lastSyncAt:     make(map[int]time.Time),
	}
}

// SyncSeason refreshes the race calendar for a season from OpenF1, at most
// once per hour per season. Round numbers are inferred from the
// chronological order of race sessions. Upstream failures degrade to "no
// update this cycle".
func (s *SyncService) SyncSeason(year int) error {
	s.mu.Lock()
	if time.Since(s.lastSyncAt[year]) < syncInterval {
		s.mu.Unlock()
		metrics.SyncRunsCounter.WithLabelValues("throttled").Inc()
		return nil
	}
	s.mu.Unlock()

	sessions, err := s.openF1Client.GetSessions(year)
	if err != nil {
		metrics.SyncRunsCounter.WithLabelValues("fetch_error").Inc()
		log.Printf("calendar sync for season %d skipped: %v", year, err)
		return nil
	}

	meetings := MapMeetings(sessions)
	for index, meeting := range meetings {
		if err := s.upsertRace(year, index+1, meeting); err != nil {
			metrics.SyncRunsCounter.WithLabelValues("upsert_error").Inc()
			return err
		}
	}

	s.mu.Lock()
	s.lastSyncAt[year] = time.Now()
	s.mu.Unlock()
	metrics.SyncRunsCounter.WithLabelValues("ok").Inc()
	return nil
}

func (s *SyncService) upsertRace(year int, round int, meeting *MeetingBundle) error {
	raceStart, err := time.Parse(time.RFC3339, meeting.Race.DateStart)
	if err != nil {
		log.Printf("skipping meeting %d: unparsable race start %q", meeting.MeetingKey, meeting.Race.DateStart)
		return nil
	}
	q1Start := raceStart
	if meeting.Qualifying != nil {
		if parsed, err := time.Parse(time.RFC3339, meeting.Qualifying.DateStart); err == nil {
			q1Start = parsed
		}
	}

	existing, err := s.raceRepository.GetRaceBySeasonAndRound(year, round)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	// finalized races are settled history, the calendar never rewrites them
	if existing != nil && existing.Status == repository.RaceStatusFinalized {
		return nil
	}

	race := &repository.Race{
		Id:            uuid.NewString(),
		Season:        year,
		Round:         round,
		Name:          raceName(meeting.Race),
		Circuit:       circuitName(meeting.Race),
		Q1StartTime:   q1Start,
		RaceStartTime: raceStart,
		Status:        repository.RaceStatusScheduled,
	}
	if existing != nil {
		race.Id = existing.Id
		race.Status = existing.Status
	}
	_, err = s.raceRepository.Save(race)
	return err
}

func raceName(session *client.OpenF1Session) string {
	base := session.Location
	if base == "" {
		base = session.CountryName
	}
	if base == "" {
		base = "Grand Prix"
	}
	if strings.Contains(base, "Grand Prix") {
		return base
	}
	return base + " Grand Prix"
}

func circuitName(session *client.OpenF1Session) string {
	for _, candidate := range []string{session.CircuitShortName, session.Location, session.CountryName} {
		if candidate != "" {
			return candidate
		}
	}
	return raceName(session)
}

// MapMeetings groups the season's sessions by meeting, keeping only Race and
// Qualifying, and orders the meetings chronologically by race start so the
// caller can infer round numbers.
func MapMeetings(sessions []*client.OpenF1Session) []*MeetingBundle {
	grouped := make(map[int]*MeetingBundle)
	for _, session := range sessions {
		if session.SessionName != "Race" && session.SessionName != "Qualifying" {
			continue
		}
		bundle, ok := grouped[session.MeetingKey]
		if !ok {
			bundle = &MeetingBundle{MeetingKey: session.MeetingKey}
			grouped[session.MeetingKey] = bundle
		}
		if session.SessionName == "Race" {
			bundle.Race = session
		} else {
			bundle.Qualifying = session
		}
	}

	meetings := make([]*MeetingBundle, 0, len(grouped))
	for _, bundle := range grouped {
		if bundle.Race != nil {
			meetings = append(meetings, bundle)
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		ti, errI := time.Parse(time.RFC3339, meetings[i].Race.DateStart)
		tj, errJ := time.Parse(time.RFC3339, meetings[j].Race.DateStart)
		if errI != nil || errJ != nil {
			return meetings[i].Race.DateStart < meetings[j].Race.DateStart
		}
		return ti.Before(tj)
	})
	return meetings
}

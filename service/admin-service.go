package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"podium/app_error"
	"podium/config"
	"podium/metrics"
	"podium/repository"
	"podium/scoring"
	"podium/utils"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type AdminService struct {
	db                *gorm.DB
	raceRepository    *repository.RaceRepository
	voteRepository    *repository.VoteRepository
	scoreRepository   *repository.ScoreRepository
	sessionRepository *repository.SessionRepository
	groupRepository   *repository.GroupRepository
	userRepository    *repository.UserRepository
	// adminEmails is injected at construction so the authorization check is
	// a pure function of (caller email, configured list).
	adminEmails []string
}

func NewAdminService(db *gorm.DB, adminEmails []string) *AdminService {
	return &AdminService{
		db:                db,
		raceRepository:    repository.NewRaceRepository(db),
		voteRepository:    repository.NewVoteRepository(db),
		scoreRepository:   repository.NewScoreRepository(db),
		sessionRepository: repository.NewSessionRepository(db),
		groupRepository:   repository.NewGroupRepository(db),
		userRepository:    repository.NewUserRepository(db),
		adminEmails:       adminEmails,
	}
}

func (s *AdminService) assertAdmin(email string) error {
	if email == "" || !utils.Contains(s.adminEmails, email) {
		return app_error.Forbidden("Admin access required")
	}
	return nil
}

// SetRaceResults stores the official finishing order and recomputes every
// affected score. The result upsert and the status transition commit
// together; per-vote score upserts are independent and idempotent, so a
// partial failure is recovered by simply re-running finalization.
func (s *AdminService) SetRaceResults(raceId string, positions []string, adminEmail string) (*repository.Result, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, app_error.Validation("Positions must not be empty")
	}

	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}
	if race.Status == repository.RaceStatusFinalized {
		log.Printf("re-finalizing race %s (season %d round %d), scores will be overwritten", race.Id, race.Season, race.Round)
	}

	result := &repository.Result{RaceId: raceId, Positions: positions}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewResultRepository(tx).UpsertResult(result); err != nil {
			return err
		}
		race.Status = repository.RaceStatusFinalized
		_, err := repository.NewRaceRepository(tx).Save(race)
		return err
	})
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepository.GetVotesForRace(raceId)
	if err != nil {
		return nil, err
	}
	for _, vote := range votes {
		score := &repository.Score{
			UserId:  vote.UserId,
			RaceId:  vote.RaceId,
			GroupId: vote.GroupId,
			Points:  scoring.ComputeScore(vote.Ranking, positions),
		}
		if err := s.scoreRepository.UpsertScore(score); err != nil {
			return nil, err
		}
		metrics.ScoresRecomputedCounter.Inc()
	}
	metrics.FinalizationsCounter.Inc()
	s.publishResultFinalized(race, positions)
	return result, nil
}

type resultFinalizedEvent struct {
	RaceId    string   `json:"race_id"`
	Season    int      `json:"season"`
	Round     int      `json:"round"`
	Positions []string `json:"positions"`
}

// publishResultFinalized is best effort; finalization never fails because
// the broker is down.
func (s *AdminService) publishResultFinalized(race *repository.Race, positions []string) {
	writer, err := config.GetResultsWriter()
	if err != nil {
		log.Printf("skipping result event for race %s: %v", race.Id, err)
		return
	}
	defer writer.Close()

	payload, err := json.Marshal(resultFinalizedEvent{
		RaceId:    race.Id,
		Season:    race.Season,
		Round:     race.Round,
		Positions: positions,
	})
	if err != nil {
		log.Printf("failed to serialize result event for race %s: %v", race.Id, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = writer.WriteMessages(ctx, kafka.Message{Key: []byte(race.Id), Value: payload})
	if err != nil {
		log.Printf("failed to publish result event for race %s: %v", race.Id, err)
	}
}

func (s *AdminService) ListRaces(adminEmail string) ([]*repository.Race, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	return s.raceRepository.FindAll()
}

type RaceCreate struct {
	Season        int
	Round         int
	Name          string
	Circuit       string
	Q1StartTime   string
	RaceStartTime string
	Status        repository.RaceStatus
}

func (s *AdminService) CreateRace(create *RaceCreate, adminEmail string) (*repository.Race, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	q1StartTime, err := time.Parse(time.RFC3339, create.Q1StartTime)
	if err != nil {
		return nil, app_error.Validation("Invalid race time")
	}
	raceStartTime, err := time.Parse(time.RFC3339, create.RaceStartTime)
	if err != nil {
		return nil, app_error.Validation("Invalid race time")
	}
	status := create.Status
	if status == "" {
		status = repository.RaceStatusScheduled
	}
	race := &repository.Race{
		Id:            uuid.NewString(),
		Season:        create.Season,
		Round:         create.Round,
		Name:          create.Name,
		Circuit:       create.Circuit,
		Q1StartTime:   q1StartTime,
		RaceStartTime: raceStartTime,
		Status:        status,
	}
	return s.raceRepository.Save(race)
}

type RaceUpdate struct {
	Season        *int
	Round         *int
	Name          *string
	Circuit       *string
	Q1StartTime   *string
	RaceStartTime *string
	Status        *repository.RaceStatus
}

func (s *AdminService) UpdateRace(raceId string, update *RaceUpdate, adminEmail string) (*repository.Race, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}

	if update.Season != nil {
		race.Season = *update.Season
	}
	if update.Round != nil {
		race.Round = *update.Round
	}
	if update.Name != nil {
		race.Name = *update.Name
	}
	if update.Circuit != nil {
		race.Circuit = *update.Circuit
	}
	if update.Q1StartTime != nil {
		parsed, err := time.Parse(time.RFC3339, *update.Q1StartTime)
		if err != nil {
			return nil, app_error.Validation("Invalid Q1 time")
		}
		race.Q1StartTime = parsed
	}
	if update.RaceStartTime != nil {
		parsed, err := time.Parse(time.RFC3339, *update.RaceStartTime)
		if err != nil {
			return nil, app_error.Validation("Invalid race time")
		}
		race.RaceStartTime = parsed
	}
	if update.Status != nil {
		if !race.Status.CanTransitionTo(*update.Status) && race.Status != *update.Status {
			return nil, app_error.Validation("Race status cannot move backwards")
		}
		race.Status = *update.Status
	}
	return s.raceRepository.Save(race)
}

func (s *AdminService) DeleteRace(raceId string, adminEmail string) error {
	if err := s.assertAdmin(adminEmail); err != nil {
		return err
	}
	_, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app_error.NotFound("Race not found")
		}
		return err
	}
	return s.raceRepository.DeleteWithDependents(raceId)
}

// SetRaceSession records a session start time. Qualifying sessions also move
// the vote lock boundary; race sessions move the race start. Votes already
// stored stay valid, only future submissions are judged against the new
// boundary.
func (s *AdminService) SetRaceSession(raceId string, sessionType repository.SessionType, startTime string, adminEmail string) (*repository.Session, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	if !repository.IsValidSessionType(sessionType) {
		return nil, app_error.Validation("Invalid session type")
	}

	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, app_error.Validation("Invalid start time")
	}

	session, err := s.sessionRepository.GetSessionByRaceAndType(raceId, sessionType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		session = &repository.Session{
			Id:     uuid.NewString(),
			RaceId: raceId,
			Type:   sessionType,
		}
	}
	session.StartTime = parsed
	session, err = s.sessionRepository.Save(session)
	if err != nil {
		return nil, err
	}

	switch sessionType {
	case repository.SessionTypeQualifying:
		race.Q1StartTime = parsed
	case repository.SessionTypeRace:
		race.RaceStartTime = parsed
	default:
		return session, nil
	}
	if _, err := s.raceRepository.Save(race); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AdminService) ListRaceSessions(raceId string, adminEmail string) ([]*repository.Session, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	_, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}
	return s.sessionRepository.GetSessionsForRace(raceId)
}

func (s *AdminService) CreateGroup(name string, creatorId string, creatorEmail string, adminEmail string) (*repository.Group, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, app_error.Validation("Group name must not be empty")
	}
	group := &repository.Group{Id: uuid.NewString(), Name: name}
	group, err := s.groupRepository.SaveGroup(group)
	if err != nil {
		return nil, err
	}
	user := &repository.User{Id: creatorId}
	if creatorEmail != "" {
		user.Email = &creatorEmail
	}
	if _, err := s.userRepository.UpsertUser(user); err != nil {
		return nil, err
	}
	member := &repository.GroupMember{GroupId: group.Id, UserId: creatorId, JoinedAt: time.Now()}
	if err := s.groupRepository.UpsertMember(member); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *AdminService) CreateGroupInvite(groupId string, adminEmail string) (*repository.GroupInvite, error) {
	if err := s.assertAdmin(adminEmail); err != nil {
		return nil, err
	}
	_, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Group not found")
		}
		return nil, err
	}
	invite := &repository.GroupInvite{
		Token:     uuid.NewString(),
		GroupId:   groupId,
		ExpiresAt: time.Now().Add(14 * 24 * time.Hour),
	}
	return s.groupRepository.SaveInvite(invite)
}

package controller

import (
	"time"

	"podium/repository"
)

type RaceResponse struct {
	Id            string                `json:"id"`
	Season        int                   `json:"season"`
	Round         int                   `json:"round"`
	Name          string                `json:"name"`
	Circuit       string                `json:"circuit"`
	Q1StartTime   time.Time             `json:"q1_start_time"`
	RaceStartTime time.Time             `json:"race_start_time"`
	Status        repository.RaceStatus `json:"status"`
}

func toRaceResponse(race *repository.Race) RaceResponse {
	return RaceResponse{
		Id:            race.Id,
		Season:        race.Season,
		Round:         race.Round,
		Name:          race.Name,
		Circuit:       race.Circuit,
		Q1StartTime:   race.Q1StartTime,
		RaceStartTime: race.RaceStartTime,
		Status:        race.Status,
	}
}

type VoteResponse struct {
	UserId    string    `json:"user_id"`
	RaceId    string    `json:"race_id"`
	GroupId   string    `json:"group_id"`
	Ranking   []string  `json:"ranking"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toVoteResponse(vote *repository.Vote) VoteResponse {
	return VoteResponse{
		UserId:    vote.UserId,
		RaceId:    vote.RaceId,
		GroupId:   vote.GroupId,
		Ranking:   vote.Ranking,
		UpdatedAt: vote.UpdatedAt,
	}
}

type ResultResponse struct {
	RaceId    string    `json:"race_id"`
	Positions []string  `json:"positions"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResultResponse(result *repository.Result) ResultResponse {
	return ResultResponse{
		RaceId:    result.RaceId,
		Positions: result.Positions,
		UpdatedAt: result.UpdatedAt,
	}
}

type ScoreResponse struct {
	UserId     string `json:"user_id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	RankChange int    `json:"rank_change"`
}

func toScoreResponse(score *repository.Score) ScoreResponse {
	name := "Player"
	if score.User != nil {
		name = score.User.Name()
	}
	return ScoreResponse{
		UserId:     score.UserId,
		Name:       name,
		Points:     score.Points,
		RankChange: score.RankChange,
	}
}

type SessionResponse struct {
	Id        string                 `json:"id"`
	RaceId    string                 `json:"race_id"`
	Type      repository.SessionType `json:"type"`
	StartTime time.Time              `json:"start_time"`
}

func toSessionResponse(session *repository.Session) SessionResponse {
	return SessionResponse{
		Id:        session.Id,
		RaceId:    session.RaceId,
		Type:      session.Type,
		StartTime: session.StartTime,
	}
}

type GroupResponse struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

func toGroupResponse(group *repository.Group) GroupResponse {
	return GroupResponse{Id: group.Id, Name: group.Name}
}

type GroupInviteResponse struct {
	Token     string    `json:"token"`
	GroupId   string    `json:"group_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toGroupInviteResponse(invite *repository.GroupInvite) GroupInviteResponse {
	return GroupInviteResponse{
		Token:     invite.Token,
		GroupId:   invite.GroupId,
		ExpiresAt: invite.ExpiresAt,
	}
}

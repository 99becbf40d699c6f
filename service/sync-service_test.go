package service

import (
	"testing"

	"podium/client"

	"github.com/stretchr/testify/assert"
)

func session(meetingKey int, name string, dateStart string) *client.OpenF1Session {
	return &client.OpenF1Session{
		MeetingKey:  meetingKey,
		SessionName: name,
		DateStart:   dateStart,
		Location:    "Sakhir",
		CountryName: "Bahrain",
	}
}

func TestMapMeetingsGroupsRaceAndQualifying(t *testing.T) {
	meetings := MapMeetings([]*client.OpenF1Session{
		session(100, "Practice 1", "2026-03-06T11:30:00+00:00"),
		session(100, "Qualifying", "2026-03-07T15:00:00+00:00"),
		session(100, "Race", "2026-03-08T15:00:00+00:00"),
	})

	assert.Len(t, meetings, 1)
	assert.Equal(t, 100, meetings[0].MeetingKey)
	assert.Equal(t, "Race", meetings[0].Race.SessionName)
	assert.Equal(t, "Qualifying", meetings[0].Qualifying.SessionName)
}

func TestMapMeetingsOrdersByRaceStart(t *testing.T) {
	meetings := MapMeetings([]*client.OpenF1Session{
		session(200, "Race", "2026-03-22T07:00:00+00:00"),
		session(100, "Race", "2026-03-08T15:00:00+00:00"),
		session(300, "Race", "2026-04-05T07:00:00+00:00"),
	})

	assert.Len(t, meetings, 3)
	assert.Equal(t, 100, meetings[0].MeetingKey)
	assert.Equal(t, 200, meetings[1].MeetingKey)
	assert.Equal(t, 300, meetings[2].MeetingKey)
}

func TestMapMeetingsDropsMeetingsWithoutRace(t *testing.T) {
	meetings := MapMeetings([]*client.OpenF1Session{
		session(100, "Qualifying", "2026-03-07T15:00:00+00:00"),
		session(200, "Race", "2026-03-22T07:00:00+00:00"),
	})

	assert.Len(t, meetings, 1)
	assert.Equal(t, 200, meetings[0].MeetingKey)
}

func TestMapMeetingsAllowsMissingQualifying(t *testing.T) {
	meetings := MapMeetings([]*client.OpenF1Session{
		session(100, "Race", "2026-03-08T15:00:00+00:00"),
	})

	assert.Len(t, meetings, 1)
	assert.Nil(t, meetings[0].Qualifying)
}

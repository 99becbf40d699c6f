package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"podium/config"
	"podium/metrics"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type OpenF1Client struct {
	client  *http.Client
	baseURL string
}

type OpenF1Session struct {
	SessionKey       int    `json:"session_key"`
	MeetingKey       int    `json:"meeting_key"`
	SessionName      string `json:"session_name"`
	SessionType      string `json:"session_type"`
	DateStart        string `json:"date_start"`
	Location         string `json:"location"`
	CountryName      string `json:"country_name"`
	CircuitShortName string `json:"circuit_short_name"`
	Year             int    `json:"year"`
}

type OpenF1Driver struct {
	FullName     string  `json:"full_name"`
	NameAcronym  string  `json:"name_acronym"`
	DriverNumber int     `json:"driver_number"`
	TeamName     *string `json:"team_name"`
}

func NewOpenF1Client() *OpenF1Client {
	return &OpenF1Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: config.Env().OpenF1URL,
	}
}

func (o *OpenF1Client) GetSessions(year int) ([]*OpenF1Session, error) {
	query := make(url.Values)
	query.Add("year", strconv.Itoa(year))
	sessions := make([]*OpenF1Session, 0)
	err := o.get("/v1/sessions", query, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (o *OpenF1Client) GetDrivers() ([]*OpenF1Driver, error) {
	query := make(url.Values)
	query.Add("session_key", "latest")
	drivers := make([]*OpenF1Driver, 0)
	err := o.get("/v1/drivers", query, &drivers)
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

func (o *OpenF1Client) get(endpoint string, query url.Values, out interface{}) error {
	timer := prometheus.NewTimer(metrics.OpenF1RequestDuration.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	resp, err := o.client.Get(o.baseURL + endpoint + "?" + query.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openf1 returned status %d for %s", resp.StatusCode, endpoint)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

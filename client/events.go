package client

import (
	"context"
	"net/http"
)

// GasValue reads the current gas concentration sample.
func (c *Client) GasValue(ctx context.Context) (*GasReading, error) {
	var reading GasReading
	if err := c.do(ctx, http.MethodGet, gasValuePath, nil, true, &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

// FanState reads the extractor fan's reported position.
func (c *Client) FanState(ctx context.Context) (*SwitchState, error) {
	var state SwitchState
	if err := c.do(ctx, http.MethodGet, fanStatePath, nil, true, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ValveState reads the gas valve's reported position.
func (c *Client) ValveState(ctx context.Context) (*SwitchState, error) {
	var state SwitchState
	if err := c.do(ctx, http.MethodGet, valveStatePath, nil, true, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// TriggerValve commands the gas valve open or closed and returns the state
// the device acknowledged.
func (c *Client) TriggerValve(ctx context.Context, open bool) (*SwitchState, error) {
	path := valveClosePath
	if open {
		path = valveOpenPath
	}
	var state SwitchState
	if err := c.do(ctx, http.MethodPost, path, nil, true, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// TriggerFan commands the extractor fan on or off and returns the state the
// device acknowledged.
func (c *Client) TriggerFan(ctx context.Context, on bool) (*SwitchState, error) {
	path := fanStatePath + "/" + FanOff
	if on {
		path = fanStatePath + "/" + FanOn
	}
	var state SwitchState
	if err := c.do(ctx, http.MethodPost, path, nil, true, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// DangerNotifications fetches the danger alert feed, newest first.
func (c *Client) DangerNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, notificationDangerPath, nil, true, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

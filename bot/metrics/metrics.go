// Package metrics submits bot statistics to InfluxDB.
package metrics

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Client is an InfluxDB client.
// All methods are safe to call on a nil *Client, which discards everything.
type Client struct {
	client influxdb2.Client
	write  api.WriteAPI

	commands atomic.Uint32
	scans    atomic.Uint32
	scanned  atomic.Uint64

	events   map[string]uint32
	eventsMu sync.Mutex

	requests   map[string]uint32
	requestsMu sync.Mutex
}

// New creates a new client. Metrics are submitted every minute until ctx is cancelled.
func New(ctx context.Context, url, token, organization, database string) *Client {
	c := &Client{
		events:   make(map[string]uint32),
		requests: make(map[string]uint32),
	}

	c.client = influxdb2.NewClientWithOptions(url, token, influxdb2.DefaultOptions().SetBatchSize(20))
	c.write = c.client.WriteAPI(organization, database)

	go func() {
		for err := range c.write.Errors() {
			log.Errorf("writing metrics: %v", err)
		}
	}()

	go c.submit(ctx)

	return c
}

// EventHandler handles Arikawa events
func (c *Client) EventHandler(ev interface{}) {
	if c == nil {
		return
	}

	c.RegisterEvent(reflect.ValueOf(ev).Elem().Type().Name())
}

// RegisterEvent registers an event name.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.eventsMu.Lock()
	c.events[name]++
	c.eventsMu.Unlock()
}

// IncCommand increments the command count by one
func (c *Client) IncCommand() {
	if c == nil {
		return
	}
	c.commands.Add(1)
}

// IncScan records a history scan of one channel.
func (c *Client) IncScan() {
	if c == nil {
		return
	}
	c.scans.Add(1)
}

// AddScanned records n messages read from channel history.
func (c *Client) AddScanned(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.scanned.Add(uint64(n))
}

// IncRequests records a REST response.
func (c *Client) IncRequests(method, path string, status int) {
	if c == nil {
		return
	}

	key := EndpointMetricsName(method, path) + " " + strconv.Itoa(status)

	c.requestsMu.Lock()
	c.requests[key]++
	c.requestsMu.Unlock()
}

func (c *Client) submit(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go c.submitInner()
		case <-ctx.Done():
			c.write.Flush()
			c.client.Close()
			return
		}
	}
}

// drain returns the values in m as fields and resets m.
func drain(mu *sync.Mutex, m map[string]uint32) (fields map[string]interface{}, total uint32) {
	mu.Lock()
	defer mu.Unlock()

	fields = make(map[string]interface{}, len(m))
	for k, v := range m {
		total += v
		fields[k] = v
		m[k] = 0
	}
	return fields, total
}

func (c *Client) submitInner() {
	log.Debug("Submitting metrics to InfluxDB")

	events, totalEvents := drain(&c.eventsMu, c.events)
	if len(events) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("events", nil, events, time.Now()))
	}

	requests, totalRequests := drain(&c.requestsMu, c.requests)
	if len(requests) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("requests", nil, requests, time.Now()))
	}

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	data := map[string]interface{}{
		"events":           totalEvents,
		"requests":         totalRequests,
		"commands":         c.commands.Swap(0),
		"scans":            c.scans.Swap(0),
		"scanned_messages": c.scanned.Swap(0),
		"alloc":            stats.Alloc,
		"sys":              stats.Sys,
		"total_alloc":      stats.TotalAlloc,
		"goroutines":       runtime.NumGoroutine(),
	}

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		log.Errorf("getting system memory: %v", err)
	} else {
		data["total_sys"] = sysMem.Used
		data["total_sys_percent"] = sysMem.UsedPercent
	}

	cpuData, err := cpu.Percent(time.Second, true)
	if err != nil {
		log.Errorf("getting cpu info: %v", err)
	} else {
		for i, d := range cpuData {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	c.write.WritePoint(influxdb2.NewPoint("statistics", nil, data, time.Now()))
}

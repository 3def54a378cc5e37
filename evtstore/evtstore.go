//
//Copyright [2016] [SnapRoute Inc]
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//	 Unless required by applicable law or agreed to in writing, software
//	 distributed under the License is distributed on an "AS IS" BASIS,
//	 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//	 See the License for the specific language governing permissions and
//	 limitations under the License.
//
// _______  __       __________   ___      _______.____    __    ____  __  .___________.  ______  __    __
// |   ____||  |     |   ____\  \ /  /     /       |\   \  /  \  /   / |  | |           | /      ||  |  |  |
// |  |__   |  |     |  |__   \  V  /     |   (----` \   \/    \/   /  |  | `---|  |----`|  ,----'|  |__|  |
// |   __|  |  |     |   __|   >   <       \   \      \            /   |  |     |  |     |  |     |   __   |
// |  |     |  `----.|  |____ /  .  \  .----)   |      \    /\    /    |  |     |  |     |  `----.|  |  |  |
// |__|     |_______||_______/__/ \__\ |_______/        \__/  \__/     |__|     |__|      \______||__|  |__|

// Package evtstore appends operational events (neighbor removed, route
// resolution failure) to a small ring log backed by redis, grounded on
// arp/server/arpDB.go's storeArpEntryInDB/deleteArpEntryInDB/
// updateArpCacheFromDB direct server.dbHdl.Do(...) calls, reimplemented
// over a github.com/garyburd/redigo/redis.Pool rather than the teacher's
// single shared connection.
//
// This is operational telemetry, not configuration persistence -- the
// spec's persistence Non-goal is about static config (see package
// config), which this package does not touch.
package evtstore

import (
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"

	"github.com/snaproute/fboss-agent/logging"
)

const ringKey = "switchagent:events"

// maxRingLen bounds the ring log; the oldest entry is trimmed on every
// append past this size.
const maxRingLen = 1000

// EventKind distinguishes the two event families this store records.
type EventKind string

const (
	KindNeighborRemoved       EventKind = "neighbor_removed"
	KindRouteResolutionFailed EventKind = "route_resolution_failed"
)

// Event is one operational record.
type Event struct {
	Kind      EventKind
	Detail    string
	Timestamp time.Time
}

// Store appends Events to a redis list acting as a fixed-size ring.
type Store struct {
	logger logging.Writer
	pool   *redis.Pool
}

// NewStore dials addr via a redigo connection pool, grounded on the
// teacher's dbutils.NewDBUtil().Connect() pattern but using a pool
// instead of one shared *redis.Conn so concurrent cache goroutines can
// append without serializing on a single connection.
func NewStore(addr string, logger logging.Writer) *Store {
	pool := &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
	}
	return &Store{logger: logger, pool: pool}
}

// Append records one event, logging (not failing) on a redis error --
// event persistence is best-effort operational telemetry, never on the
// critical path of RIB/FIB reconciliation or neighbor resolution.
func (s *Store) Append(kind EventKind, detail string, at time.Time) {
	conn := s.pool.Get()
	defer conn.Close()

	encoded := fmt.Sprintf("%d|%s|%s", at.Unix(), kind, detail)
	if _, err := conn.Do("LPUSH", ringKey, encoded); err != nil {
		s.logger.Err(fmt.Sprintln("evtstore: failed to append event:", err))
		return
	}
	if _, err := conn.Do("LTRIM", ringKey, 0, maxRingLen-1); err != nil {
		s.logger.Err(fmt.Sprintln("evtstore: failed to trim ring:", err))
	}
}

// NeighborRemoved records a neighbor entry's expiration/flush.
func (s *Store) NeighborRemoved(ip string, reason string) {
	s.Append(KindNeighborRemoved, fmt.Sprintf("ip=%s reason=%s", ip, reason), time.Now())
}

// RouteResolutionFailed records a route that could not be fully
// resolved in the most recent FIB projection pass.
func (s *Store) RouteResolutionFailed(vrf uint32, prefix string) {
	s.Append(KindRouteResolutionFailed, fmt.Sprintf("vrf=%d prefix=%s", vrf, prefix), time.Now())
}

// Recent returns up to n of the most recently appended events, newest
// first.
func (s *Store) Recent(n int) ([]string, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return redis.Strings(conn.Do("LRANGE", ringKey, 0, n-1))
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package backend

import (
	"time"

	"github.com/tochemey/actormetrics/log"
)

// Log is a Backend that writes every update to a logger at debug level.
// It is meant for development and troubleshooting, not production export.
type Log struct {
	logger log.Logger
}

// enforce compilation error
var _ Backend = (*Log)(nil)

// NewLog creates a logging backend. A nil logger falls back to the default
// logger.
func NewLog(logger log.Logger) *Log {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Log{logger: logger}
}

// RecordCounter implements Backend.
func (x *Log) RecordCounter(name string, tags map[string]string, value int64) error {
	x.logger.Debugf("counter %s += %d", keyOf(name, tags), value)
	return nil
}

// RecordGauge implements Backend.
func (x *Log) RecordGauge(name string, tags map[string]string, value int64) error {
	x.logger.Debugf("gauge %s = %d", keyOf(name, tags), value)
	return nil
}

// RecordTimer implements Backend.
func (x *Log) RecordTimer(name string, tags map[string]string, elapsed time.Duration) error {
	x.logger.Debugf("timer %s observed %s", keyOf(name, tags), elapsed)
	return nil
}

// Close implements Backend.
func (x *Log) Close() error {
	return x.logger.Flush()
}

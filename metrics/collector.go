/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rpclink"

type collector struct {
	reg *prometheus.Registry

	received   *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	actionDur  *prometheus.HistogramVec
	broadcast  *prometheus.CounterVec
	arenaInUse prometheus.Gauge
}

func newCollector() *collector {
	c := &collector{
		reg: prometheus.NewRegistry(),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Messages read off a link, by link kind.",
		}, []string{"link"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Messages that could not be processed, by reason.",
		}, []string{"reason"}),
		actionDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_invoke_seconds",
			Help:      "Time spent inside a dispatched protocol action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"protocol", "action"}),
		broadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_delivered_total",
			Help:      "Per-client sends completed during a BroadcastEvent fan-out.",
		}, []string{"protocol"}),
		arenaInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_blocks_in_use",
			Help:      "Blocks currently on loan from the arena buffer provider.",
		}),
	}

	c.reg.MustRegister(c.received, c.dropped, c.actionDur, c.broadcast, c.arenaInUse)
	return c
}

func (c *collector) MessageReceived(link string) {
	c.received.WithLabelValues(link).Inc()
}

func (c *collector) MessageDropped(reason string) {
	c.dropped.WithLabelValues(reason).Inc()
}

func (c *collector) ActionInvoked(protocolID, actionID uint8, seconds float64) {
	c.actionDur.WithLabelValues(strconv.Itoa(int(protocolID)), strconv.Itoa(int(actionID))).Observe(seconds)
}

func (c *collector) BroadcastDelivered(protocolID uint8) {
	c.broadcast.WithLabelValues(strconv.Itoa(int(protocolID))).Inc()
}

func (c *collector) SetArenaInUse(blocks int) {
	c.arenaInUse.Set(float64(blocks))
}

func (c *collector) Registry() *prometheus.Registry {
	return c.reg
}

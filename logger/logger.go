/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type lgr struct {
	e *logrus.Entry
}

// New returns a Logger writing JSON lines to stdout at InfoLevel.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)

	return &lgr{e: logrus.NewEntry(l)}
}

func (o *lgr) SetLevel(lvl Level) {
	o.e.Logger.SetLevel(lvl.toLogrus())
}

func (o *lgr) GetLevel() Level {
	return Level(o.e.Logger.GetLevel())
}

func (o *lgr) WithField(key string, value any) Logger {
	return &lgr{e: o.e.WithField(key, value)}
}

func (o *lgr) WithFields(f Fields) Logger {
	return &lgr{e: o.e.WithFields(logrus.Fields(f))}
}

func (o *lgr) WithProtocol(protocolID uint8) Logger {
	return o.WithField("protocol_id", protocolID)
}

func (o *lgr) WithAction(actionID uint32) Logger {
	return o.WithField("action_id", actionID)
}

func (o *lgr) WithClient(handle uint64) Logger {
	return o.WithField("client_handle", handle)
}

func (o *lgr) WithWorker(index int) Logger {
	return o.WithField("worker_index", index)
}

func (o *lgr) WithError(err error) Logger {
	return &lgr{e: o.e.WithError(err)}
}

func (o *lgr) Trace(args ...any) { o.e.Trace(args...) }
func (o *lgr) Debug(args ...any) { o.e.Debug(args...) }
func (o *lgr) Info(args ...any)  { o.e.Info(args...) }
func (o *lgr) Warn(args ...any)  { o.e.Warn(args...) }
func (o *lgr) Error(args ...any) { o.e.Error(args...) }
func (o *lgr) Fatal(args ...any) { o.e.Fatal(args...) }

func (o *lgr) Tracef(format string, args ...any) { o.e.Tracef(format, args...) }
func (o *lgr) Debugf(format string, args ...any) { o.e.Debugf(format, args...) }
func (o *lgr) Infof(format string, args ...any)  { o.e.Infof(format, args...) }
func (o *lgr) Warnf(format string, args ...any)  { o.e.Warnf(format, args...) }
func (o *lgr) Errorf(format string, args ...any) { o.e.Errorf(format, args...) }
func (o *lgr) Fatalf(format string, args ...any) { o.e.Fatalf(format, args...) }

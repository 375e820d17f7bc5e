/*
Copyright © 2026 the photoevap authors.
This file is part of photoevap.

photoevap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

photoevap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with photoevap.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command photoevap is a command-line interface for the photoevap
// protoplanetary disk model.
package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy/photoevaputil"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
}

func main() {
	if err := photoevaputil.Root.Execute(); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}
}

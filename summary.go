// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/grailbio/base/data"
	"github.com/grailbio/diskbench/fio"
)

var summaryTemplate = template.Must(template.New("summary").
	Funcs(template.FuncMap{
		"human": func(v int) string {
			return data.Size(v).String()
		},
		"stat": func(s Statistic) string {
			return fmt.Sprintf("%s\t± %s", seconds(s.Mean), seconds(s.StdDev))
		},
		"mean": func(s Statistic) string {
			return seconds(s.Mean)
		},
	}).
	Parse(`{{.label}}	size {{.config.Size}} ({{human .config.Size}})
	transmission:	{{stat .config.TransmissionTime}}
	latency:	{{stat .config.LatencyTime}}
	read processing:	{{stat .config.ReadProcessingTime}}
	write processing:	{{stat .config.WriteProcessingTime}}
	kind	rate	seek	overheads
{{range .kinds}}	{{.Name}}	{{mean .Config.RateTime}}	{{mean .Config.SeekTime}}	{{mean .Config.OverheadsTime}}
{{end}}`))

// seconds formats a time in seconds as a duration.
func seconds(s float64) string {
	return time.Duration(s * float64(time.Second)).String()
}

type namedKind struct {
	Name   string
	Config KindConfig
}

// WriteSummary writes a human-readable, tab-aligned summary of the
// provided configs to w.
func WriteSummary(w io.Writer, configs PacketConfigs) error {
	var tw tabwriter.Writer
	tw.Init(w, 4, 4, 1, ' ', 0)
	for _, c := range configs {
		kinds := make([]namedKind, len(fio.Kinds))
		for i, kind := range fio.Kinds {
			kinds[i] = namedKind{KindName(kind), *c.Kind(kind)}
		}
		err := summaryTemplate.Execute(&tw, map[string]interface{}{
			"label":  c.Label,
			"config": c.PacketConfig,
			"kinds":  kinds,
		})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

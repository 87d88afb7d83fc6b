package sim

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes run summaries and component statuses to GreptimeDB.
type GreptimeDBWriter struct {
	client         greptimeClient
	runTable       string
	componentTable string
	log            *slog.Logger
}

// NewGreptimeDBWriter connects to endpoint (host or host:port) and writes into database.
func NewGreptimeDBWriter(endpoint, database, runTable, componentTable string, log *slog.Logger) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{
		client:         client,
		runTable:       runTable,
		componentTable: componentTable,
		log:            log,
	}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "grpc://")
	if !strings.Contains(endpoint, ":") {
		return endpoint, defaultGreptimePort, nil
	}
	host, p, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", 0, fmt.Errorf("greptime endpoint %q: %w", endpoint, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("greptime endpoint %q: bad port: %w", endpoint, err)
	}
	return host, port, nil
}

// WriteRun inserts a single run.
func (w *GreptimeDBWriter) WriteRun(rec RunRecord) error {
	return w.WriteRuns([]RunRecord{rec})
}

// WriteRuns inserts the run summaries and the component rows of each run.
func (w *GreptimeDBWriter) WriteRuns(recs []RunRecord) error {
	if len(recs) == 0 {
		return nil
	}
	runs, err := w.runRows(recs)
	if err != nil {
		return err
	}
	comps, err := w.componentRows(recs)
	if err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), runs, comps); err != nil {
		w.log.Error("greptime write failed", "runs", len(recs), "err", err)
		return err
	}
	w.log.Debug("greptime wrote runs", "runs", len(recs))
	return nil
}

func (w *GreptimeDBWriter) runRows(recs []RunRecord) (*table.Table, error) {
	tbl, err := table.New(w.runTable)
	if err != nil {
		return nil, err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddFieldColumn("run", types.INT64)
	tbl.AddFieldColumn("scenario", types.STRING)
	tbl.AddFieldColumn("phase", types.STRING)
	tbl.AddFieldColumn("potential_loss", types.FLOAT64)
	tbl.AddFieldColumn("mitigation_cost", types.FLOAT64)
	tbl.AddFieldColumn("net_value", types.FLOAT64)
	tbl.AddFieldColumn("shipments", types.INT64)
	tbl.AddFieldColumn("critical", types.INT64)
	tbl.AddFieldColumn("events", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range recs {
		events := make([]string, 0, len(r.Events))
		for _, ev := range r.Events {
			events = append(events, ev.Detail)
		}
		critical := 0
		for _, c := range r.Components {
			if c.Shortfall {
				critical++
			}
		}
		if err := tbl.AddRow(
			r.RunID,
			int64(r.Run),
			r.Scenario,
			r.Phase,
			r.Impact.PotentialLoss.InexactFloat64(),
			r.Impact.MitigationCost.InexactFloat64(),
			r.Impact.NetValue.InexactFloat64(),
			int64(r.Impact.Shipments),
			int64(critical),
			strings.Join(events, " | "),
			r.Timestamp,
		); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func (w *GreptimeDBWriter) componentRows(recs []RunRecord) (*table.Table, error) {
	tbl, err := table.New(w.componentTable)
	if err != nil {
		return nil, err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("component", types.STRING)
	tbl.AddFieldColumn("supplier", types.STRING)
	tbl.AddFieldColumn("status", types.STRING)
	tbl.AddFieldColumn("lead_time_days", types.INT64)
	tbl.AddFieldColumn("on_hand_stock", types.INT64)
	tbl.AddFieldColumn("daily_consumption", types.INT64)
	tbl.AddFieldColumn("days_of_supply", types.FLOAT64)
	tbl.AddFieldColumn("shortfall", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range recs {
		for _, c := range r.Components {
			if err := tbl.AddRow(
				r.RunID,
				c.Name,
				c.Supplier,
				string(c.Status),
				int64(c.LeadTimeDays),
				int64(c.OnHandStock),
				int64(c.DailyConsumption),
				c.DaysOfSupply,
				c.Shortfall,
				r.Timestamp,
			); err != nil {
				return nil, err
			}
		}
	}
	return tbl, nil
}

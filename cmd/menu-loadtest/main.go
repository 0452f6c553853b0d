// Command menu-loadtest нагружает menu.v1.MenuService по gRPC и печатает сводку латентности.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/screen"
	grpcsvc "github.com/vladislavdragonenkov/menuboard/internal/service/grpc"
)

type loadMode string

const (
	modeBrowse    loadMode = "browse"
	modeAdd       loadMode = "add"
	modeAddRemove loadMode = "add-remove"
)

// menuClient — подмножество grpcsvc.MenuClient, которое использует нагрузка.
type menuClient interface {
	GetScreen(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListItems(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	AddItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveItem(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

var _ menuClient = (*grpcsvc.MenuClient)(nil)

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	removeRate  int
	course      domain.Course
	price       float64
	namePrefix  string
	outputPath  string
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var modeValue, timeoutValue, durationValue, courseValue string

	fs := flag.NewFlagSet("menu-loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; in duration mode only used when explicitly set")
	fs.StringVar(&durationValue, "duration", "0s", "optional time-based run duration (e.g. 1m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.StringVar(&timeoutValue, "timeout", "5s", "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modeBrowse), "load mode: browse | add | add-remove")
	fs.IntVar(&cfg.removeRate, "remove-rate", 0, "remove probability in percent for add mode (0..100)")
	fs.StringVar(&courseValue, "course", "", "course for created items; empty rotates through all courses")
	fs.Float64Var(&cfg.price, "price", 42.5, "price of created items")
	fs.StringVar(&cfg.namePrefix, "name-prefix", "load", "name prefix of created items")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	timeout, err := time.ParseDuration(strings.TrimSpace(timeoutValue))
	if err != nil {
		return cfg, fmt.Errorf("parse timeout: %w", err)
	}
	cfg.timeout = timeout

	duration, err := time.ParseDuration(strings.TrimSpace(durationValue))
	if err != nil {
		return cfg, fmt.Errorf("parse duration: %w", err)
	}
	cfg.duration = duration

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	if cfg.mode, err = parseMode(modeValue); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(courseValue) != "" {
		if cfg.course, err = domain.ParseCourse(courseValue); err != nil {
			return cfg, fmt.Errorf("parse course: %w", err)
		}
	}

	switch {
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return cfg, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	case cfg.price < 0:
		return cfg, errors.New("price must be >= 0")
	case cfg.removeRate < 0 || cfg.removeRate > 100:
		return cfg, errors.New("remove-rate must be between 0 and 100")
	case strings.TrimSpace(cfg.namePrefix) == "":
		return cfg, errors.New("name-prefix is required")
	}

	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeBrowse, modeAdd, modeAddRemove:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	result, err := run(cfg, os.Stdout)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// run открывает соединения, прогоняет сценарии и печатает отчёт в out.
func run(cfg config, out io.Writer) (report, error) {
	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]menuClient, 0, cfg.connections)
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()
	for i := 0; i < cfg.connections; i++ {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return report{}, fmt.Errorf("create grpc client connection: %w", err)
		}
		conns = append(conns, conn)
		clients = append(clients, grpcsvc.NewMenuClient(conn))
	}

	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()
	failures := runWorkers(clients, cfg, runID, col)

	result := col.buildReport(startedAt, time.Since(startedAt))
	if result.FailedScenarios == 0 && failures > 0 {
		result.FailedScenarios = failures
		result.ErrorRate = ratio(result.FailedScenarios, result.TotalScenarios)
	}

	printReport(out, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			return result, fmt.Errorf("write report: %w", err)
		}
	}
	return result, nil
}

func runWorkers(clients []menuClient, cfg config, runID string, col *collector) int64 {
	jobs := make(chan int, cfg.concurrency*2)
	var failures int64
	var wg sync.WaitGroup

	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(cli menuClient) {
			defer wg.Done()
			for id := range jobs {
				if err := runScenario(cli, cfg, id, runID, col); err != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()
	return failures
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}
		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

func runScenario(client menuClient, cfg config, index int, runID string, col *collector) (err error) {
	started := time.Now()
	defer func() {
		col.record(scenarioMethod, time.Since(started), grpcCode(err))
	}()

	course := courseFor(cfg, index)
	if cfg.mode == modeBrowse {
		return browse(client, cfg.timeout, course, col)
	}

	name := fmt.Sprintf("%s-%s-%d", cfg.namePrefix, runID, index)
	id, err := callAddItem(client, cfg.timeout, name, cfg.price, course, col)
	if err != nil {
		return err
	}
	if id == "" {
		return status.Error(codes.Internal, "add response returned empty item id")
	}

	if err := callGetScreen(client, cfg.timeout, screen.NameCategory, course, col); err != nil {
		return err
	}

	if cfg.mode == modeAddRemove || shouldRemove(index, cfg.removeRate) {
		return callRemoveItem(client, cfg.timeout, id, col)
	}
	return nil
}

// browse повторяет путь посетителя: главная, список раздела, вкладка фильтра.
func browse(client menuClient, timeout time.Duration, course domain.Course, col *collector) error {
	if err := callGetScreen(client, timeout, screen.NameHome, "", col); err != nil {
		return err
	}
	if err := callListItems(client, timeout, course, col); err != nil {
		return err
	}
	return callGetScreen(client, timeout, screen.NameFilter, course, col)
}

func courseFor(cfg config, index int) domain.Course {
	if cfg.course != "" {
		return cfg.course
	}
	courses := domain.Courses()
	return courses[index%len(courses)]
}

func callGetScreen(client menuClient, timeout time.Duration, name string, course domain.Course, col *collector) error {
	req, err := structpb.NewStruct(map[string]any{"screen": name, "course": string(course)})
	if err != nil {
		return err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err = client.GetScreen(ctx, req)
	col.record("GetScreen", time.Since(start), grpcCode(err))
	return err
}

func callListItems(client menuClient, timeout time.Duration, course domain.Course, col *collector) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := client.ListItems(ctx, wrapperspb.String(string(course)))
	col.record("ListItems", time.Since(start), grpcCode(err))
	return err
}

func callAddItem(client menuClient, timeout time.Duration, name string, price float64, course domain.Course, col *collector) (string, error) {
	req, err := structpb.NewStruct(map[string]any{
		"name":        name,
		"description": "generated by menu-loadtest",
		"price":       price,
		"course":      string(course),
	})
	if err != nil {
		return "", err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.AddItem(ctx, req)
	col.record("AddItem", time.Since(start), grpcCode(err))
	if err != nil {
		return "", err
	}
	return resp.GetFields()["id"].GetStringValue(), nil
}

func callRemoveItem(client menuClient, timeout time.Duration, id string, col *collector) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := client.RemoveItem(ctx, wrapperspb.String(id))
	col.record("RemoveItem", time.Since(start), grpcCode(err))
	return err
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}

func shouldRemove(index, removeRate int) bool {
	if removeRate <= 0 {
		return false
	}
	if removeRate >= 100 {
		return true
	}
	return index%100 < removeRate
}

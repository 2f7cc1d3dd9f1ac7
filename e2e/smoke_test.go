//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const repoRootRel = ".."   // relative to ./e2e
const mainPkgRel = "./cmd" // main.go lives in cmd/

const mqttPort = nat.Port("1883/tcp")

func TestSmoke(t *testing.T) {
	repoRoot := repoRootPath(t)
	brokerHost, brokerPort := startMosquitto(t)
	weatherURL := startWeatherFeeds(t)

	events := subscribe(t, brokerHost, brokerPort, "shoresquad/crews")

	bin := buildBinary(t, repoRoot)
	addr := pickFreeAddr(t)

	cmd := exec.Command(bin)
	cmd.Dir = repoRoot
	cmd.Env = append(os.Environ(),
		"APP_ENV=dev",
		"LOG_LEVEL=info",
		"HTTP_ADDR="+addr,
		"STATIC_DIR="+filepath.Join(repoRoot, "static"),
		"DB_DRIVER=sqlite3",
		"SQLITE_PATH="+filepath.Join(t.TempDir(), "shoresquad.db"),
		"WEATHER_BASE_URL="+weatherURL,
		"MQTT_BROKER="+brokerHost,
		"MQTT_PORT="+brokerPort,
		"MQTT_CLIENT_ID=shoresquad-e2e",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	client := &http.Client{Timeout: 2 * time.Second}
	base := "http://" + addr

	waitForOK(t, client, base+"/healthz", 10*time.Second)

	t.Run("page renders every section", func(t *testing.T) {
		resp, err := client.Get(base + "/")
		if err != nil {
			t.Fatalf("GET /: %v", err)
		}
		defer resp.Body.Close()
		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			t.Fatalf("parse page: %v", err)
		}
		if n := doc.Find("#beachesList .beach-card").Length(); n != 4 {
			t.Errorf("beach cards = %d; want 4", n)
		}
		if n := doc.Find("#crewsList .crew-card").Length(); n != 4 {
			t.Errorf("crew cards = %d; want 4", n)
		}
		if doc.Find("#mapData").Length() != 1 {
			t.Error("map data missing")
		}
	})

	t.Run("weather comes from the live feeds", func(t *testing.T) {
		deadline := time.Now().Add(10 * time.Second)
		for {
			var body struct {
				Loaded bool `json:"loaded"`
				Cards  []struct {
					StationID string `json:"stationId"`
				} `json:"cards"`
			}
			getJSON(t, client, base+"/api/v1/weather", &body)
			if body.Loaded && len(body.Cards) == 1 && body.Cards[0].StationID == "S24" {
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf("weather not loaded from feeds: %+v", body)
			}
			time.Sleep(200 * time.Millisecond)
		}
	})

	t.Run("creating a crew publishes an event", func(t *testing.T) {
		form := url.Values{"name": {"Shell Seekers"}, "location": {"Pasir Ris"}, "size": {"5"}}
		req, _ := http.NewRequest(http.MethodPost, base+"/api/v1/crews", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("POST /api/v1/crews: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d; want 201", resp.StatusCode)
		}

		select {
		case payload := <-events:
			var event struct {
				Event string `json:"event"`
				Crew  struct {
					ID   int    `json:"id"`
					Name string `json:"name"`
				} `json:"crew"`
			}
			if err := json.Unmarshal(payload, &event); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			if event.Event != "crew_created" || event.Crew.ID != 5 || event.Crew.Name != "Shell Seekers" {
				t.Errorf("event = %+v", event)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("no crew event received")
		}

		var stats struct {
			Crews int `json:"crews"`
		}
		getJSON(t, client, base+"/api/v1/stats", &stats)
		if stats.Crews != 5 {
			t.Errorf("stats.crews = %d; want 5", stats.Crews)
		}
	})

	stopServer(t, cmd)
}

func startMosquitto(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2",
		ExposedPorts: []string{string(mqttPort)},
		Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		// Broker persistence is throwaway for a smoke run.
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Tmpfs = map[string]string{"/mosquitto/data": "rw"}
		},
		WaitingFor: wait.ForListeningPort(mqttPort).WithStartupTimeout(30 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start mosquitto container: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Terminate(ctx)
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("mosquitto host: %v", err)
	}
	port, err := c.MappedPort(ctx, mqttPort)
	if err != nil {
		t.Fatalf("mosquitto port: %v", err)
	}
	return host, port.Port()
}

// startWeatherFeeds serves one station across all three feeds.
func startWeatherFeeds(t *testing.T) string {
	t.Helper()

	feed := func(value float64) string {
		return fmt.Sprintf(`{"metadata":{"stations":[{"id":"S24","name":"Upper Changi Road North"}]},`+
			`"items":[{"timestamp":"2025-12-01T10:00:00+08:00","readings":[{"station_id":"S24","value":%g}]}]}`, value)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /air-temperature", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, feed(29.4)) })
	mux.HandleFunc("GET /relative-humidity", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, feed(74)) })
	mux.HandleFunc("GET /wind-speed", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, feed(8.2)) })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func subscribe(t *testing.T, host, port, topic string) <-chan []byte {
	t.Helper()

	out := make(chan []byte, 8)
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID("shoresquad-e2e-listener")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		t.Fatalf("listener connect: %v", token.Error())
	}
	t.Cleanup(func() { client.Disconnect(250) })

	token := client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		out <- msg.Payload()
	})
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		t.Fatalf("listener subscribe: %v", token.Error())
	}
	return out
}

func getJSON(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func repoRootPath(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	repo := filepath.Clean(filepath.Join(wd, repoRootRel))
	if _, err := os.Stat(filepath.Join(repo, "go.mod")); err != nil {
		t.Fatalf("repo root %q does not contain go.mod: %v", repo, err)
	}

	return repo
}

func buildBinary(t *testing.T, repoRoot string) string {
	t.Helper()

	tmp := t.TempDir()
	out := filepath.Join(tmp, "shoresquad-server")

	build := exec.Command("go", "build", "-o", out, mainPkgRel)
	build.Dir = repoRoot
	build.Env = os.Environ()

	b, err := build.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(b))
	}

	return out
}

func pickFreeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen :0: %v", err)
	}
	defer ln.Close()

	return ln.Addr().String()
}

func waitForOK(t *testing.T, client *http.Client, url string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server not healthy after %s: %s", timeout, url)
}

func stopServer(t *testing.T, cmd *exec.Cmd) {
	t.Helper()

	_ = cmd.Process.Signal(syscall.SIGTERM)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		t.Fatalf("server did not exit in time")
	case err := <-done:
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				t.Fatalf("server exited non-zero: %v", err)
			}
			t.Fatalf("server wait error: %v", err)
		}
	}
}

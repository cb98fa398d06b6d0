package middleware

import "testing"

func TestMetricPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/jobs", "/api/jobs"},
		{"/api/jobs/JRS-2026-0042", "/api/jobs/{id}"},
		{"/api/jobs/JRS-2026-0042/drops/2/pod", "/api/jobs/{id}/drops/{id}/pod"},
		{"/api/jobs/JRS-2026-0042.pdf", "/api/jobs/{id}"},
		{"/api/users/17", "/api/users/{id}"},
		{"/api/jobs/JRS-2026-0042/extra-charges/0b0f7f6e-1db1-4f6e-9f10-3b2f8f1c9d2a",
			"/api/jobs/{id}/extra-charges/{id}"},
		{"/api/dashboard/stats", "/api/dashboard/stats"},
		{"/healthz", "/healthz"},
	}
	for _, tc := range cases {
		if got := metricPath(tc.in); got != tc.want {
			t.Errorf("metricPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

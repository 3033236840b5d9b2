package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wisaw_links_parsed_total",
		Help: "Links parsed, by resulting intent kind.",
	}, []string{"kind"})

	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wisaw_redirects_total",
		Help: "Universal-link requests, by status (redirected, not_found).",
	}, []string{"status"})

	ShareLinksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wisaw_share_links_created_total",
		Help: "Friendship share links built.",
	})

	IdentityValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wisaw_identity_validations_total",
		Help: "Identity form validations, by result (valid, invalid).",
	}, []string{"result"})

	FriendNameUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wisaw_friend_name_updates_total",
		Help: "Friend-name updates, by result (applied, stale, rejected).",
	}, []string{"result"})
)

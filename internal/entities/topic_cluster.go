package entities

import (
	"sort"
	"strings"

	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

// ExtractTopicClusters groups Wikipedia articles into TopicCluster nodes
// using the configured coarse-tag-to-cluster-label mapping. Left
// unconfigured or disabled, it returns an empty table (recorded decision for
// the pipeline's topic-clustering open question, see DESIGN.md).
func ExtractTopicClusters(articles []silver.WikipediaArticle, cfg pipelineconfig.TopicClusterConfig) []model.TopicCluster {
	if !cfg.Enabled || len(cfg.Tags) == 0 {
		return nil
	}

	byLabel := map[string]*model.TopicCluster{}
	for _, a := range articles {
		label, ok := matchTag(a.Source.Title, cfg.Tags)
		if !ok {
			continue
		}
		c, exists := byLabel[label]
		if !exists {
			c = &model.TopicCluster{Label: label}
			byLabel[label] = c
		}
		c.Pages = append(c.Pages, a.Source.PageID)
	}

	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	out := make([]model.TopicCluster, len(labels))
	for i, l := range labels {
		out[i] = *byLabel[l]
	}
	return out
}

// matchTag does a case-insensitive substring match of a configured coarse
// tag against the article title, returning the cluster label it maps to.
func matchTag(title string, tags map[string]string) (string, bool) {
	lower := strings.ToLower(title)
	for tag, label := range tags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			return label, true
		}
	}
	return "", false
}

package sqlite

import (
	"strings"

	repo "skill-registry/internal/skill/repository"
)

// buildListFilter builds the WHERE clause + args shared by the count and page
// queries of ListSkills.
func (r *implRepository) buildListFilter(opt repo.ListSkillsOptions) (string, []any) {
	var conditions []string
	var args []any

	if q := strings.TrimSpace(opt.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conditions = append(conditions, "(lower(name) LIKE ? OR lower(description) LIKE ? OR slug LIKE ?)")
		args = append(args, like, like, like)
	}
	switch {
	case opt.Tier != nil:
		conditions = append(conditions, "tier = ?")
		args = append(args, int(*opt.Tier))
	case opt.MinTier != nil:
		conditions = append(conditions, "tier >= ?")
		args = append(args, int(*opt.MinTier))
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildPagination returns the LIMIT/OFFSET suffix. A non-positive limit
// returns every row.
func (r *implRepository) buildPagination(opt repo.ListSkillsOptions) (string, []any) {
	if opt.Limit <= 0 {
		return "", nil
	}
	return " LIMIT ? OFFSET ?", []any{opt.Limit, max(opt.Offset, 0)}
}

package i18n

// builtinEnglish is the base table. Locale files loaded at startup may
// override or extend it; keys absent from a locale fall back here only
// when the default locale is used, otherwise to the key itself.
func builtinEnglish() map[string]string {
	return map[string]string{
		"app_title":                     "EduFlow",
		"app_description":               "Browse curated learning paths, track your progress, and level up as you go.",
		"points":                        "Points",
		"level":                         "Level",
		"my_profile":                    "My Profile",
		"home":                          "Home",
		"login":                         "Log in",
		"logout":                        "Log out",
		"select_a_topic":                "Select a topic",
		"select_topic_to_begin":         "Select a topic above to begin your learning path.",
		"welcome_to_eduflow":            "Welcome to EduFlow",
		"watch_video":                   "Watch video",
		"read_article":                  "Read article",
		"view_project":                  "View project",
		"filter_by":                     "Filter by:",
		"clear_filters":                 "Clear filters",
		"no_items_match_filters":        "No items match the selected filters.",
		"progress":                      "Progress: {{completed}} of {{total}} completed",
		"difficulty_easy":               "Easy",
		"difficulty_medium":             "Medium",
		"difficulty_hard":               "Hard",
		"level_up_title":                "Level up! You reached level {{level}}",
		"level_up_description":          "You earned the title: {{prize}}",
		"level_up_description_no_prize": "Keep going to reach the next level.",
		"your_personalized_path":        "Your personalized path",
		"roadmap_day":                   "Day {{day}}",
		"profile_page_title":            "Your Profile",
		"loading_profile":               "Loading your profile...",
		"login_to_view_profile":         "Log in to view your profile.",
		"current_level":                 "Current level:",
		"total_points":                  "Total points:",
		"next_level_in":                 "Next level in",
		"points_needed":                 "points",
		"prize_for_next_level":          "Next reward: {{prize}}",
		"edit_profile":                  "Edit profile",
		"full_name":                     "Full name",
		"avatar_url":                    "Avatar URL",
		"update_profile":                "Update profile",
		"profile_updated_success":       "Profile updated",
		"profile_update_error":          "Could not update profile",
		"error_loading_profile":         "Could not load profile",
	}
}

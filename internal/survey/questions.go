// internal/survey/questions.go
// The production question data. Section layout mirrors the survey UI:
//   1: Religious Practice (1-14)
//   2: Hashkafa & Beliefs (15-26)
//   3: Career & Education (27-38)
//   4: Lifestyle (39-50)
//   5: Family & Future (51-60)
//   6: About You (61-66)
// A handful of questions score under a different category than their section
// (e.g. 46, 49-50, 54-55 score as communication).

package survey

var defaultQuestions = []Question{
	// Section 1: Religious Practice
	{ID: 1, Section: 1, Type: TypeEnum, Category: CategoryReligiousPractice,
		Prompt:  "How do you observe Shabbat?",
		Options: []string{"fully_shomer_shabbat", "mostly_observant", "traditional", "flexible"}},
	{ID: 2, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How often do you attend minyan or services?"},
	{ID: 3, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How central is daily davening to your routine?"},
	{ID: 4, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How important is regular Torah learning to you?"},
	{ID: 5, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How strictly do you observe fast days?"},
	{ID: 6, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How involved are you in your synagogue community?"},
	{ID: 7, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How important is it that your home follows halacha?"},
	{ID: 8, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How consistently do you make brachot before eating?"},
	{ID: 9, Section: 1, Type: TypeEnum, Category: CategoryReligiousPractice,
		Prompt:  "What kashrut standard do you keep at home?",
		Options: []string{"strictly_kosher", "kosher_style", "kosher_with_leniencies", "not_kosher"}},
	{ID: 10, Section: 1, Type: TypeEnum, Category: CategoryReligiousPractice,
		Prompt:  "What kashrut standard do you keep outside the home?",
		Options: []string{"kosher_only", "vegetarian_out", "eats_out_dairy", "no_restrictions"}},
	{ID: 11, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How fully do you observe the chagim?"},
	{ID: 12, Section: 1, Type: TypeMultiSelect, Category: CategoryReligiousPractice,
		Prompt: "Which religious practices are part of your weekly life?",
		Options: []string{"shabbat_meals", "learning_seder", "shiurim", "chesed_volunteering",
			"mikvah", "tehillim", "kiruv"}},
	{ID: 13, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How much structure do you want around tzniut in your home?"},
	{ID: 14, Section: 1, Type: TypeLikert, Category: CategoryReligiousPractice,
		Prompt: "How much do you want your observance to grow over time?"},

	// Section 2: Hashkafa & Beliefs
	{ID: 15, Section: 2, Type: TypeEnum, Category: CategoryHashkafa,
		Prompt: "Which hashkafic community do you most identify with?",
		Options: []string{"yeshivish", "modern_orthodox_machmir", "modern_orthodox_liberal",
			"chassidish", "dati_leumi", "traditional"}},
	{ID: 16, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How important is emunah-focused learning in your life?"},
	{ID: 17, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How do you balance secular culture with Torah values?"},
	{ID: 18, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How important is a rav or posek in your decision making?"},
	{ID: 19, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How strongly do you feel about living in Israel someday?"},
	{ID: 20, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How open are you to hashkafic differences in a spouse?"},
	{ID: 21, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How much should Torah study shape a husband's schedule?"},
	{ID: 22, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How important is secular education alongside Torah?"},
	{ID: 23, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How do you relate to the broader non-observant world?"},
	{ID: 24, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How important is Zionism to your identity?"},
	{ID: 25, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How much should a wife's role follow traditional models?"},
	{ID: 26, Section: 2, Type: TypeLikert, Category: CategoryHashkafa,
		Prompt: "How settled do you feel in your current hashkafa?"},

	// Section 3: Career & Education
	{ID: 27, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How central is career ambition to your identity?"},
	{ID: 28, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How many hours a week do you expect to work long-term?"},
	{ID: 29, Section: 3, Type: TypeMultiSelect, Category: CategoryCareer,
		Prompt: "Which fields best describe your work or studies?",
		Options: []string{"chinuch", "healthcare", "law", "technology", "finance",
			"trades", "arts", "community_work", "academia", "business"}},
	{ID: 30, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How important is it that your spouse has a degree?"},
	{ID: 31, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How comfortable are you with a spouse out-earning you?"},
	{ID: 32, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How willing are you to relocate for work?"},
	{ID: 33, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How important is continuing your own education?"},
	{ID: 34, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How much do you value financial stability before marriage?"},
	{ID: 35, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How do you feel about supporting a learning husband?"},
	{ID: 36, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How important is it to keep work out of evenings and Shabbat?"},
	{ID: 37, Section: 3, Type: TypeLikert, Category: CategoryCareer,
		Prompt: "How much does a spouse's profession matter to you?"},
	{ID: 38, Section: 3, Type: TypeText, Category: CategoryCareer,
		Prompt: "In a sentence or two, where do you see your career in ten years?"},

	// Section 4: Lifestyle
	{ID: 39, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How social is your ideal Shabbat table?"},
	{ID: 40, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How much do you value travel and new experiences?"},
	{ID: 41, Section: 4, Type: TypeMultiSelect, Category: CategoryLifestyle,
		Prompt: "How do you like to spend free time?",
		Options: []string{"hiking_outdoors", "reading", "sports", "music", "cooking",
			"board_games", "volunteering", "museums", "hosting"}},
	{ID: 42, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How important is healthy eating and exercise to you?"},
	{ID: 43, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How tidy and organized do you keep your space?"},
	{ID: 44, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How big a role does extended family play in your week?"},
	{ID: 45, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How spontaneous versus planned is your ideal weekend?"},
	{ID: 46, Section: 4, Type: TypeLikert, Category: CategoryCommunication,
		Prompt: "How directly do you prefer to raise something that bothers you?"},
	{ID: 47, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How much quiet time do you need to recharge?"},
	{ID: 48, Section: 4, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How important is hosting guests regularly?"},
	{ID: 49, Section: 4, Type: TypeLikert, Category: CategoryCommunication,
		Prompt: "How comfortable are you talking about feelings?"},
	{ID: 50, Section: 4, Type: TypeLikert, Category: CategoryCommunication,
		Prompt: "How quickly do you prefer to resolve a disagreement?"},

	// Section 5: Family & Future
	{ID: 51, Section: 5, Type: TypeEnum, Category: CategoryFamilyVision,
		Prompt: "What kind of community do you want to raise a family in?",
		Options: []string{"in_town_large", "in_town_small", "out_of_town", "israel", "flexible"}},
	{ID: 52, Section: 5, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How large a family do you hope to have?"},
	{ID: 53, Section: 5, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How soon after marriage do you want to start a family?"},
	{ID: 54, Section: 5, Type: TypeLikert, Category: CategoryCommunication,
		Prompt: "How much do you want decisions made jointly versus by one partner?"},
	{ID: 55, Section: 5, Type: TypeLikert, Category: CategoryCommunication,
		Prompt: "How often do you want a serious check-in conversation?"},
	{ID: 56, Section: 5, Type: TypeMultiSelect, Category: CategoryFamilyVision,
		Prompt: "Which schooling options would you consider for children?",
		Options: []string{"yeshiva_day_school", "bais_yaakov_cheder", "community_day_school",
			"chassidish_mosdos", "homeschool", "public_plus_talmud_torah"}},
	{ID: 57, Section: 5, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How involved should grandparents be in raising children?"},
	{ID: 58, Section: 5, Type: TypeEnum, Category: CategoryFamilyVision,
		Prompt:  "Do you want children?",
		Options: []string{"definitely", "probably", "unsure", "no"}},
	{ID: 59, Section: 5, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How traditional a division of household roles do you want?"},
	{ID: 60, Section: 5, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How important is living near family after marriage?"},

	// Section 6: About You
	{ID: 61, Section: 6, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How much of a morning person are you?"},
	{ID: 62, Section: 6, Type: TypeMultiSelect, Category: CategoryLifestyle,
		Prompt: "What kind of music do you enjoy?",
		Options: []string{"jewish_music", "classical", "pop", "folk", "jazz", "none_really"}},
	{ID: 63, Section: 6, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How adventurous are you with food?"},
	{ID: 64, Section: 6, Type: TypeLikert, Category: CategoryLifestyle,
		Prompt: "How much do you use social media?"},
	{ID: 65, Section: 6, Type: TypeLikert, Category: CategoryFamilyVision,
		Prompt: "How important are pets in your future home?"},
	{ID: 66, Section: 6, Type: TypeText, Category: CategoryLifestyle,
		Prompt: "Anything else a match should know about you?"},
}

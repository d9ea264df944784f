package fixture

import "time"

// Builtin returns the bundled catalog in declaration order: 29 positive, 10 negative and
// 2 UI fixtures. Each call returns a fresh slice.
func Builtin() []Fixture {
	return []Fixture{
		{
			ID:      "Pos_Fun_0001",
			Input:   "mama vaeda karanavaa",
			Outcome: ExactMatch{Expected: "මම වැඩ කරනවා"},
			Meta: Metadata{
				Name:         "Convert Simple present tense sentence",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Conversion of present tense sentences",
				QualityFocus: "Accuracy validation",
				Description:  "Present tense is accurately converted in Sinhala. Proper spacing and word segmentation are maintained.",
			},
		},
		{
			ID:      "Pos_Fun_0002",
			Input:   "mama paasalata yanna hadhanne, habaeyi mata amaaru nisaa payin yanna baee.",
			Outcome: ExactMatch{Expected: "මම පාසලට යන්න හදන්නෙ, හබැයි මට අමාරු නිසා පයින් යන්න බෑ."},
			Meta: Metadata{
				Name:         "Compound sentence with conjunction",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Conjunction usage in Sinhala",
				QualityFocus: "Accuracy validation",
				Description:  "Sentence meaning is fully preserved. Conjunction \"haebaeyi\" correctly joins the clauses.",
			},
		},
		{
			ID:      "Pos_Fun_0003",
			Input:   "oyaata hariyatama eeka kiyanna puluvannam mama ahalaa balannam.",
			Outcome: ExactMatch{Expected: "ඔයාට හරියටම ඒක කියන්න පුලුවන්නම් මම අහලා බලන්නම්."},
			Meta: Metadata{
				Name:         "Complex conditional sentence",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Complex conditional sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Sentence meaning is fully preserved. Conditional structure \"nam\" is correctly applied.",
			},
		},
		{
			ID:      "Pos_Fun_0004",
			Input:   "oyaata badaginidha?",
			Outcome: ExactMatch{Expected: "ඔයාට බඩගිනිද?"},
			Meta: Metadata{
				Name:         "Interrogative question form.",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Imperative command sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Proper question form is applied. Question meaning is fully preserved.",
			},
		},
		{
			ID:      "Pos_Fun_0005",
			Input:   "naevatha balanna.",
			Outcome: ExactMatch{Expected: "නැවත බලන්න."},
			Meta: Metadata{
				Name:         "Imperative command form",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Imperative command form sentence",
				QualityFocus: "Accuracy validation",
				Description:  "The sentence correctly conveys a command to repeat an action.",
			},
		},
		{
			ID:      "Pos_Fun_0006",
			Input:   "api ehenam eeka hariyatama karamu.",
			Outcome: ExactMatch{Expected: "අපි එහෙනම් ඒක හරියටම කරමු."},
			Meta: Metadata{
				Name:         "Positive sentence form",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Positive sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Sentence meaning correctly expresses a positive intention.",
			},
		},
		{
			ID:      "Pos_Fun_0007",
			Input:   "ee gaena magen ahanna epaa.mama eeka oyaata kiyannee naehae.",
			Outcome: ExactMatch{Expected: "ඒ ගැන මගෙන් අහන්න එපා.මම ඒක ඔයාට කියන්නේ නැහැ."},
			Meta: Metadata{
				Name:         "Negative sentence form.",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Negative sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Sentence meaning correctly expresses a negative intention.",
			},
		},
		{
			ID:      "Pos_Fun_0008",
			Input:   "suba upandhinayak!",
			Outcome: ExactMatch{Expected: "සුබ උපන්දිනයක්!"},
			Meta: Metadata{
				Name:         "Common Greeting",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Input normalization for non english phrases",
				QualityFocus: "Accuracy validation",
				Description:  "Exact phrase match to known sinhala greetings.",
			},
		},
		{
			ID:      "Pos_Fun_0009",
			Input:   "karuNaakaralaa mata eya paehaedhiliva kiyanna puLuvandha?",
			Outcome: ExactMatch{Expected: "කරුණාකරලා මට එය පැහැදිලිව කියන්න පුළුවන්ද?"},
			Meta: Metadata{
				Name:         "Polite request phrase.",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Request / response – tests translation of polite requests",
				QualityFocus: "Accuracy validation",
				Description:  "Sentence meaning correctly express a polite request.",
			},
		},
		{
			ID:      "Pos_Fun_0010",
			Input:   "eeyi, ooka karapan.",
			Outcome: ExactMatch{Expected: "ඒයි, ඕක කරපන්."},
			Meta: Metadata{
				Name:         "Informal phrasing",
				Length:       LengthShort,
				Category:     "Daily conversational usage",
				GrammarFocus: "Informal sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Informal tone and meaning are fully preserved.",
			},
		},
		{
			ID:      "Pos_Fun_0011",
			Input:   "mata badaginiyi.",
			Outcome: ExactMatch{Expected: "මට බඩගිනියි."},
			Meta: Metadata{
				Name:         "Day to day expression.",
				Length:       LengthShort,
				Category:     "Daily language usage",
				GrammarFocus: "Day to day expression",
				QualityFocus: "Accuracy validation",
				Description:  "Everyday meaning of the expression is fully preserved.",
			},
		},
		{
			ID:      "Pos_Fun_0012",
			Input:   "oyaa kaaraNaava mokakdha kiyala hodhata hithalaa balanna.",
			Outcome: ExactMatch{Expected: "ඔයා කාරණාව මොකක්ද කියල හොදට හිතලා බලන්න."},
			Meta: Metadata{
				Name:         "Imperative command form",
				Length:       LengthMedium,
				Category:     "Daily conversational usage",
				GrammarFocus: "Imperative command sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "The sentence correctly conveys a command to think and try.",
			},
		},
		{
			ID:      "Pos_Fun_0013",
			Input:   "Api       heta   udheema nuvara   balaa   pitath  venavaa.   obath kaemathi           nam        apith  ekka  enna puLuvan.",
			Outcome: ExactMatch{Expected: "අපි       හෙට   උදේම නුවර   බලා   පිටත්  වෙනවා.   ඔබත් කැමති           නම්        අපිත්  එක්ක  එන්න පුළුවන්."},
			Meta: Metadata{
				Name:         "Multiple spaces, line breaks, and paragraph inputs",
				Length:       LengthMedium,
				Category:     "Formatting(spaces,line break,paragraphs)",
				GrammarFocus: "Contains main clause and conditional invitation",
				QualityFocus: "Robustness validation",
				Description:  "Input contains multiple spaces and paragraph-style formatting.",
			},
		},
		{
			ID:      "Pos_Fun_0014",
			Input:   "mamabathkanavaa",
			Outcome: ExactMatch{Expected: "මමබත්කනවා"},
			Meta: Metadata{
				Name:         "Missing spaces / joined words (stress test)",
				Length:       LengthShort,
				Category:     "Formatting(spaces,pharagraphs),handling joined words",
				GrammarFocus: "Simple sentence, correct word separation",
				QualityFocus: "Robustness validation",
				Description:  "The input contains words that are joined together without spaces.",
			},
		},
		{
			ID:      "Pos_Fun_0015",
			Input:   "Ovun obata podi podi kaaryayan tikak pavaraavi. Oba ema kaaryayan siyallama eka eka hariyata karanna oonii.",
			Outcome: ExactMatch{Expected: "ඔවුන් ඔබට පොඩි පොඩි කාර්යයන් ටිකක් පවරාවි. ඔබ එම කාර්යයන් සියල්ලම එක එක හරියට කරන්න ඕනී."},
			Meta: Metadata{
				Name:         "Repeated words for emphasis.",
				Length:       LengthMedium,
				Category:     "Daily conversational usage",
				GrammarFocus: "Repeated words handling",
				QualityFocus: "Accuracy validation",
				Description:  "Repetition for emphasis is correctly preserved.",
			},
		},
		{
			ID:      "Pos_Fun_0016",
			Input:   "Mama pereedhaa thaniyenma kanthooruvata gihin aavaa. ovun mata naevatha paemiNiya yuthu dhinaya dhanvaa evannam kivvaa.",
			Outcome: ExactMatch{Expected: "මම පෙරේදා තනියෙන්ම කන්තෝරුවට ගිහින් ආවා. ඔවුන් මට නැවත පැමිණිය යුතු දිනය දන්වා එවන්නම් කිව්වා."},
			Meta: Metadata{
				Name:         "Tense variations (past tense)",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Ensures correct English past tense conversion",
				QualityFocus: "Accuracy validation",
				Description:  "Input is a simple sentence in past tense.",
			},
		},
		{
			ID:      "Pos_Fun_0017",
			Input:   "mama labana maasayee gedhara gihin enna yanavaa. ee nisaa api iiLaGa sathiyee eyaava balanna yamu.",
			Outcome: ExactMatch{Expected: "මම ලබන මාසයේ ගෙදර ගිහින් එන්න යනවා. ඒ නිසා අපි ඊළඟ සතියේ එයාව බලන්න යමු."},
			Meta: Metadata{
				Name:         "Tense variations.",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Verifies tense conversion from Sinhala to English",
				QualityFocus: "Accuracy validation",
				Description:  "Input is a short sentence expressing future intention.",
			},
		},
		{
			ID:      "Pos_Fun_0018",
			Input:   "mata karadhara karanna epaa.mama dhaen paadam karanna hadhannee.",
			Outcome: ExactMatch{Expected: "මට කරදර කරන්න එපා.මම දැන් පාඩම් කරන්න හදන්නේ."},
			Meta: Metadata{
				Name:         "pronoun variations",
				Length:       LengthMedium,
				Category:     "Daily language usage",
				GrammarFocus: "Imperative command sentence handling",
				QualityFocus: "Accuracy validation",
				Description:  "Input is short and imperative in tone.",
			},
		},
		{
			ID:      "Pos_Fun_0019",
			Input:   "siraavata, ela kiri machan, adha office meeting godak thibuna nisaa gedhara enna late vuNaa. eeka poddak amaaruyi vagee, namuth api eeka plan karala  thiyena nisaa poddak adjust karala karamu.",
			Outcome: ExactMatch{Expected: "සිරාවට, එල කිරි මචන්, අද office meeting ගොඩක් තිබුන නිසා ගෙදර එන්න late වුණා. ඒක පොඩ්ඩක් අමාරුයි වගේ, නමුත් අපි ඒක plan කරල  තියෙන නිසා පොඩ්ඩක් adjust කරල කරමු."},
			Meta: Metadata{
				Name:         "Slang and colloquial phrasing",
				Length:       LengthMedium,
				Category:     "Slang/informal language",
				GrammarFocus: "Multiple clauses,conjuctions and dependent phrases",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains informal/slang language.",
			},
		},
		{
			ID:      "Pos_Fun_0020",
			Input:   "Mama adha hospital yanna innee. mama doctor appointment ekak dhaalaa thiyennee. mata hariyata check-up eka karaganna oonee nisaa, adha mata veelaasaninma yanna venavaa. ee nisaa mama adha vaeda tika puLuvan tharam ikmanin ivarayak karaganna balanavaa. mata havasa thaniyen gedhara yanna kammaeli nisaa oyaata puluvandha office ivara velaa hospital eka gaavata aevith inna. ethakota api dhennatama ekata gedhara yanna puluvan. mama hithana vidhiyata havasa bas ekak thiyenavaa apita eeken ikmanata yanna puluvan.",
			Outcome: ExactMatch{Expected: "මම අද hospital යන්න ඉන්නේ. මම doctor appointment එකක් දාලා තියෙන්නේ. මට හරියට check-up එක කරගන්න ඕනේ නිසා, අද මට වේලාසනින්ම යන්න වෙනවා. ඒ නිසා මම අද වැඩ ටික පුළුවන් තරම් ඉක්මනින් ඉවරයක් කරගන්න බලනවා. මට හවස තනියෙන් ගෙදර යන්න කම්මැලි නිසා ඔයාට පුලුවන්ද office ඉවර වෙලා hospital එක ගාවට ඇවිත් ඉන්න. එතකොට අපි දෙන්නටම එකට ගෙදර යන්න පුලුවන්. මම හිතන විදියට හවස බස් එකක් තියෙනවා අපිට ඒකෙන් ඉක්මනට යන්න පුලුවන්."},
			Meta: Metadata{
				Name:         "Long paragraph with multiple simple sentences",
				Length:       LengthLong,
				Category:     "Daily language usage",
				GrammarFocus: "Verifies handling of sentence boundaries",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains multiple simple sentences forming a short paragraph.",
			},
		},
		{
			ID:      "Pos_Fun_0021",
			Input:   "mama adha havasa pansalee puujaavata giyee naehae.                                      oyaalaa giyaadha?",
			Outcome: ExactMatch{Expected: "මම අද හවස පන්සලේ පූජාවට ගියේ නැහැ.                                      ඔයාලා ගියාද?"},
			Meta: Metadata{
				Name:         "Line breaks (multi-line input)",
				Length:       LengthMedium,
				Category:     "Formatting(spaces,line break,paragraphs)",
				GrammarFocus: "Interrogative statement",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains line breaks (multi-line) to test handling of paragraph-style input.",
			},
		},
		{
			ID:      "Pos_Fun_0022",
			Input:   "Mama adha raee vedhdhii Zoom meeting ekak dhaala hariyatama eeka karana vidhiya oyaata kiyalaa dhennam.Oyaata thiyennee oyaage sampuurNa visthara tika dhaalaa Whatsapp paNividayak evanna. oyaagee LinkedIn giNuma yaavathkaaliina karalaa thiyaaganna. mokadha eeka oyaava mee raekiyaavata hodhatama sudhusu kenek vidhihata pennanna loku udhavvak venavaa.  avasaanayee obava yam raekiyavakin thooragena aethnam ee bava obata ovun Email ossee obata dhaenum dhenu aetha.",
			Outcome: ExactMatch{Expected: "මම අද රෑ වෙද්දී Zoom meeting එකක් දාල හරියටම ඒක කරන විදිය ඔයාට කියලා දෙන්නම්.ඔයාට තියෙන්නේ ඔයාගෙ සම්පූර්ණ විස්තර ටික දාලා Whatsapp පණිවිඩයක් එවන්න. ඔයාගේ LinkedIn ගිණුම යාවත්කාලීන කරලා තියාගන්න. මොකද ඒක ඔයාව මේ රැකියාවට හොදටම සුදුසු කෙනෙක් විදිහට පෙන්නන්න ලොකු උදව්වක් වෙනවා.  අවසානයේ ඔබව යම් රැකියවකින් තෝරගෙන ඇත්නම් ඒ බව ඔබට ඔවුන් Email ඔස්සේ ඔබට දැනුම් දෙනු ඇත."},
			Meta: Metadata{
				Name:         "English technical/brand terms embedded in Singlish",
				Length:       LengthLong,
				Category:     "MixedSinglish + English",
				GrammarFocus: "Complex,multiple clauses with technical terms",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains multiple English technical/brand terms embedded in Sinhala context.",
			},
		},
		{
			ID:      "Pos_Fun_0023",
			Input:   "Mata bank eken ATM ekee PIN eka change karanna kiyala message ekak SMS vidhihata aavaa. passe mama bank app eka open karala, instructions tika hariyata follow karala, PIN eka update karala complete kalaa. Mama hithanavaa, mee vidhiyata karoth apita safe saha secure vidhihata ATM transactions manage karanna puluvan veyi kiyalaa. ee vagee banking tasks timely complete karanna naethnam, eka eka gaetalu aethivenna puluvan haekiyaavak thiyenavaa. ee nisaa mama organized way ekakin mehema small banking activities complete karanna hithanavaa, ee vagema future eken unnecessary problems adu karaganna puluvan veyi kiyalaa vishvaasa karanavaa.",
			Outcome: ExactMatch{Expected: "මට bank එකෙන් ATM එකේ PIN එක change කරන්න කියල message එකක් SMS විදිහට ආවා. පස්සෙ මම bank app එක open කරල, instructions ටික හරියට follow කරල, PIN එක update කරල complete කලා. මම හිතනවා, මේ විදියට කරොත් අපිට safe සහ secure විදිහට ATM transactions manage කරන්න පුලුවන් වෙයි කියලා. ඒ වගේ banking tasks timely complete කරන්න නැත්නම්, එක එක ගැටලු ඇතිවෙන්න පුලුවන් හැකියාවක් තියෙනවා. ඒ නිසා මම organized way එකකින් මෙහෙම small banking activities complete කරන්න හිතනවා, ඒ වගෙම future එකෙන් unnecessary problems අඩු කරගන්න පුලුවන් වෙයි කියලා විශ්වාස කරනවා."},
			Meta: Metadata{
				Name:         "English abbreviations and short forms",
				Length:       LengthLong,
				Category:     "Names / places / common English words",
				GrammarFocus: "Multiple clauses describing actions in sequence",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains English abbreviations and short forms (\"ATM\", \"PIN\", \"SMS\", \"App\") that should remain unchanged.",
			},
		},
		{
			ID:      "Pos_Fun_0024",
			Input:   "Heta Malligee upandhinaya nisaa api loku happy mood ekakin innavaa. Oyaata heta havasata podi dheeval tikak genath dhenna puluvandha? mokadha mama shop eken 2 kg ka paan piti genath thiyenne cake hadhanna oonee nisaa. Api okkoma ekathu velaa gedhara kaeema tikak rasata hadhalaa, birthday decorations tikak podiyata karala, yaaluvantath invite karalaa lassanata celebrate karanna hithan innavaa. Ehema karoth eyath godak surprise venna puluvan.",
			Outcome: ExactMatch{Expected: "හෙට මල්ලිගේ උපන්දිනය නිසා අපි ලොකු happy mood එකකින් ඉන්නවා. ඔයාට හෙට හවසට පොඩි දේවල් ටිකක් ගෙනත් දෙන්න පුලුවන්ද? මොකද මම shop එකෙන් 2 kg ක පාන් පිටි ගෙනත් තියෙන්නෙ cake හදන්න ඕනේ නිසා. අපි ඔක්කොම එකතු වෙලා ගෙදර කෑම ටිකක් රසට හදලා, birthday decorations ටිකක් පොඩියට කරල, යාලුවන්ටත් invite කරලා ලස්සනට celebrate කරන්න හිතන් ඉන්නවා. එහෙම කරොත් එයත් ගොඩක් surprise වෙන්න පුලුවන්."},
			Meta: Metadata{
				Name:         "Units and Numbers Conversion",
				Length:       LengthLong,
				Category:     "Names / places / common English words",
				GrammarFocus: "Compound sentences",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains numbers (\"2 kg\"), English words (\"shop\", \"cake\") that must remain unchanged.",
			},
		},
		{
			ID:      "Pos_Fun_0025",
			Input:   "hari, mama kohomahari eyaata eeka paehadhili karalaa kiyalaa, oyaata avashya dhee labaa ganna balannam. api passe eyaa ekka loku prashnayak vennee nathuva, kathaa baha karalaa eekata hariyata visadhumak ganna balamu. oyaa ee gaena godak lokuvata hithanna yanna epaa, oyaage hithata loku barak gannath epaa, mokadha mee velavee api haemooma ekathu velaa inna nisaa apita eeka pahasuven karanna puluvan kiyalaa mama vishvaasa karanavaa. Ikmaninma haemadheema hariyata sidhu velaa api haemootama sathutu venna puluvan veyi kiyala mama hithanavaa.",
			Outcome: ExactMatch{Expected: "හරි, මම කොහොමහරි එයාට ඒක පැහදිලි කරලා කියලා, ඔයාට අවශ්ය දේ ලබා ගන්න බලන්නම්. අපි පස්සෙ එයා එක්ක ලොකු ප්\u200dරශ්නයක් වෙන්නේ නතුව, කතා බහ කරලා ඒකට හරියට විසදුමක් ගන්න බලමු. ඔයා ඒ ගැන ගොඩක් ලොකුවට හිතන්න යන්න එපා, ඔයාගෙ හිතට ලොකු බරක් ගන්නත් එපා, මොකද මේ වෙලවේ අපි හැමෝම එකතු වෙලා ඉන්න නිසා අපිට ඒක පහසුවෙන් කරන්න පුලුවන් කියලා මම විශ්වාස කරනවා. ඉක්මනින්ම හැමදේම හරියට සිදු වෙලා අපි හැමෝටම සතුටු වෙන්න පුලුවන් වෙයි කියල මම හිතනවා."},
			Meta: Metadata{
				Name:         "Informal conversational responses",
				Length:       LengthLong,
				Category:     "Slang/informal language  in friendly tone",
				GrammarFocus: "Compound sentences",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains informal, conversational Sinhala with slang expressions.",
			},
		},
		{
			ID:      "Pos_Fun_0026",
			Input:   "Apita iiLaGa maase project eka submit karanna thiyenavaa ee nisaa, adha idhan hariyata plan karala vaeda karanna hithan inne. Api time table ekak hadhala, eka eka task podi podi vidhihata divide karagena, regular vidhihata vaeda karoth, deadline eka miss venne naethuva vaeda tika karaganna puluvan veyi kiyalaa mama loku visvaasayak thiyagena inne. Ehema karoth api okkotama stress naethuva, quality ekath hodhatama maintain karagena, project eka successfully submit karanna puluvan veyi kiyala mama hithanavaa.",
			Outcome: ExactMatch{Expected: "අපිට ඊළඟ මාසෙ project එක submit කරන්න තියෙනවා ඒ නිසා, අද ඉදන් හරියට plan කරල වැඩ කරන්න හිතන් ඉන්නේ. අපි time table එකක් හදල, එක එක task පොඩි පොඩි විදිහට divide කරගෙන, regular විදිහට වැඩ කරොත්, deadline එක miss වෙන්නෙ නැතුව වැඩ ටික කරගන්න පුලුවන් වෙයි කියලා මම ලොකු විස්වාසයක් තියගෙන ඉන්නේ. එහෙම කරොත් අපි ඔක්කොටම stress නැතුව, quality එකත් හොදටම maintain කරගෙන, project එක successfully submit කරන්න පුලුවන් වෙයි කියල මම හිතනවා."},
			Meta: Metadata{
				Name:         "Sentences containing places and common English words that should remain as they are",
				Length:       LengthLong,
				Category:     "Names / places / common English words",
				GrammarFocus: "Multiple clauses describing planning and confidence",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains common English words (\"project\", \"deadline\").",
			},
		},
		{
			ID:      "Pos_Fun_0027",
			Input:   "oyaa heta office enavanam mata kiyanna. ehemanam api dhennata puluvan heta havasata coffee ekak bonna yanna.naeththam ithin vena dhavasaka hambavenna  puluvan. oyaa kaemathi thaenak thiyenavanam mata kiyanna mama oyaava ethanata ekkagena yannam.ethakota apita puluvan nidhahasee katha baha karanna. mata oyaa ekka kathaa karanna godak dheeval thiyenavaa. mama hithanavaa ehema giyoth apita hodhatama enjoy karannath puluvan veyi kiyalaa.",
			Outcome: ExactMatch{Expected: "ඔයා හෙට office එනවනම් මට කියන්න. එහෙමනම් අපි දෙන්නට පුලුවන් හෙට හවසට coffee එකක් බොන්න යන්න.නැත්තම් ඉතින් වෙන දවසක හම්බවෙන්න  පුලුවන්. ඔයා කැමති තැනක් තියෙනවනම් මට කියන්න මම ඔයාව එතනට එක්කගෙන යන්නම්.එතකොට අපිට පුලුවන් නිදහසේ කත බහ කරන්න. මට ඔයා එක්ක කතා කරන්න ගොඩක් දේවල් තියෙනවා. මම හිතනවා එහෙම ගියොත් අපිට හොදටම enjoy කරන්නත් පුලුවන් වෙයි කියලා."},
			Meta: Metadata{
				Name:         "Informal multi-clause conversational input",
				Length:       LengthLong,
				Category:     "Daily language usage",
				GrammarFocus: "Multiple connected clauses with conditionals",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains informal, conversational Sinhala with multiple clauses and conditional phrases.",
			},
		},
		{
			ID:      "Pos_Fun_0028",
			Input:   "maarga sQQvarDhana aDhikaariya sathu maarga kotas 150k pamaNa vinaashayata pathva aethi. ehi samastha dhiga pramaaNaya kiloomiitar 95k pamaNa vana bava pravaahana AmathYA saDHahan kaLeeya.dhaenatamath eevaa repair kiriimata miliyana thunsiiyak pamaNa aayoojanaya karalaa thiyennee. labana maasayee sita sQQvarDhana katayuthu ikmanin sidhu kiriimata niyamithava aetha. mee sadhahaa ikmaninma nadaththu kiriimee saha kriyaathmaka kiriimee kaNdaayam sudhusu paridhi yodhavana bavath dhanvaa aetha.",
			Outcome: ExactMatch{Expected: "මාර්ග සංවර්ධන අධිකාරිය සතු මාර්ග කොටස් 150ක් පමණ විනාශයට පත්ව ඇති. එහි සමස්ත දිග ප්\u200dරමාණය කිලෝමීටර් 95ක් පමණ වන බව ප්\u200dරවාහන අමත්\u200dය සඳහන් කළේය.දැනටමත් ඒවා repair කිරීමට මිලියන තුන්සීයක් පමණ ආයෝජනය කරලා තියෙන්නේ. ලබන මාසයේ සිට සංවර්ධන කටයුතු ඉක්මනින් සිදු කිරීමට නියමිතව ඇත. මේ සදහා ඉක්මනින්ම නඩත්තු කිරීමේ සහ ක්\u200dරියාත්මක කිරීමේ කණ්ඩායම් සුදුසු පරිදි යොදවන බවත් දන්වා ඇත."},
			Meta: Metadata{
				Name:         "Paragraph-style input",
				Length:       LengthLong,
				Category:     "Handling paragraph-style input with messy transliteration",
				GrammarFocus: "Multiple clauses and sentences in a paragraph",
				QualityFocus: "Robustness validation",
				Description:  "Paragraph-style input with multiple sentences concatenated.",
			},
		},
		{
			ID:      "Pos_Fun_0029",
			Input:   "mata oyath ekka enna vidhiyak naehae. mokadha mata dhesaembar 25 Christmas party ekakata invite karalaa thiyennee. mama heta 4.00 PM vagee vedhdhii office eken enavaa. aevith mama christmas gift ganna town ekata yanavaa. iitapassee eevath aragena gedhara aevillaa aapahu yanavaa. party eka ivara venna raeevena nisaa samaharavita mata ikmanin gedhara enna baeri veyi. ehema unoth mama oyaata call ekak dhiilaa ee gaena kiyannam,oyaa mama enakam balan innee naethuva nidhaaganna.",
			Outcome: ExactMatch{Expected: "මට ඔයත් එක්ක එන්න විදියක් නැහැ. මොකද මට දෙසැම්බර් 25 Christmas party එකකට invite කරලා තියෙන්නේ. මම හෙට 4.00 PM වගේ වෙද්දී office එකෙන් එනවා. ඇවිත් මම christmas gift ගන්න town එකට යනවා. ඊටපස්සේ ඒවත් අරගෙන ගෙදර ඇවිල්ලා ආපහු යනවා. party එක ඉවර වෙන්න රෑවෙන නිසා සමහරවිට මට ඉක්මනින් ගෙදර එන්න බැරි වෙයි. එහෙම උනොත් මම ඔයාට call එකක් දීලා ඒ ගැන කියන්නම්,ඔයා මම එනකම් බලන් ඉන්නේ නැතුව නිදාගන්න."},
			Meta: Metadata{
				Name:         "Dates and time format",
				Length:       LengthLong,
				Category:     "Mixed Singlish + English - tests translation of sentences",
				GrammarFocus: "multiple connected sentences forming coherent paragraph",
				QualityFocus: "Accuracy validation",
				Description:  "Input contains a mix of Sinhala and English words (\"Christmas party\", \"4.00 PM\")",
			},
		},
		{
			ID:             "Neg_Fun_0001",
			Input:          "",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusPass,
			Meta: Metadata{
				Name:         "Empty input field handling",
				Length:       LengthShort,
				Category:     "Empty/cleared input handling",
				GrammarFocus: "S (≤30 characters)",
				QualityFocus: "Robustness Validation",
				Description:  "No text was enterd in the input field. The system does not show any error or warning message.",
			},
		},
		{
			ID:             "Neg_Fun_0002",
			Input:          "ahhfhfu njkafrmmgi amkokkhlisdh",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{Summary: "Meaningless input is transliterated instead of being rejected."},
			Meta: Metadata{
				Name:         "Random meaningless Input handling",
				Length:       LengthShort,
				Category:     "Typographical error handling",
				GrammarFocus: "S (≤30 characters)",
				QualityFocus: "Robustness Validation",
				Description:  "The input contains random and meaningless characters. The system does not show any error or warning message.",
			},
		},
		{
			ID:             "Neg_Fun_0003",
			Input:          "567844",
			Outcome:        AbsenceCheck{Strict: false},
			ExpectedStatus: StatusPass,
			Meta: Metadata{
				Name:         "Numbers-only input handling",
				Length:       LengthShort,
				Category:     "Punctuation/Numbers",
				GrammarFocus: "S (≤30 characters)",
				QualityFocus: "Robustness validation",
				Description:  "The input contains only numeric characters. The system does not provide any validation.",
			},
		},
		{
			ID:             "Neg_Fun_0004",
			Input:          "Mee inne mage hodhama yaaluvaa.",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{
				Summary:         "Capitalized 'Mee' transliterates correctly but lowercase 'mage' is not transliterated, showing case sensitivity issues.",
				ProductExpected: "මේ ඉන්නෙ මගෙ හොදම යාලුවා.",
				KnownActual:     "මේ ඉන්නේ mage හොදම යාලුවා.",
			},
			Meta: Metadata{
				Name:         "Mixed case Singlish with possessive form",
				Length:       LengthShort,
				Category:     "Case sensitivity",
				GrammarFocus: "Simple sentence / Possessive form",
				QualityFocus: "Partial transliteration",
				Description:  "Capitalized 'Mee' transliterates correctly but lowercase 'mage' is not transliterated, showing case sensitivity issues.",
			},
		},
		{
			ID:             "Neg_Fun_0005",
			Input:          "mee aBA valin rasata achchaaruvak dhaanna.",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{
				Summary:         "System fails to transliterate common Singlish abbreviations like 'aBA' (අඹ) while correctly transliterating other Singlish words.",
				ProductExpected: "මේ අඹ වලින් රසට අච්චාරුවක් දාන්න.",
				KnownActual:     "මේ aBA වලින් රසට අච්චාරුවක් දාන්න.",
			},
			Meta: Metadata{
				Name:         "Singlish fruit name abbreviation handling",
				Length:       LengthShort,
				Category:     "Abbreviation handling",
				GrammarFocus: "Simple sentence",
				QualityFocus: "Partial transliteration failure",
				Description:  "System fails to transliterate common Singlish abbreviations like 'aBA' (අඹ) while correctly transliterating other Singlish words.",
			},
		},
		{
			ID:             "Neg_Fun_0006",
			Input:          "mee @@ masa $$$ obee @@@ vidhuli &&&Bhaavithaya### aDhika vii aetha. ## bilpatha rupiyal 5,430 ki. dhina 7k thuLa @@@ gevanna. prashna saDHAhaa 1987 amathanna.",
			Outcome:        AbsenceCheck{Strict: false},
			ExpectedStatus: StatusFail,
			Defect: Defect{Summary: "Symbol-laden input is transliterated without any validation message."},
			Meta: Metadata{
				Name:         "Mixed symbols",
				Length:       LengthMedium,
				Category:     "Typographical error handling",
				GrammarFocus: "M (31–299 characters)",
				QualityFocus: "Robustness validation",
				Description:  "Input contains random symbols, punctuation, and numbers mixed with Singlish. System may fail to transliterate correctly due to unsupported characters.",
			},
		},
		{
			ID:             "Neg_Fun_0007",
			Input:          "mama dhaenata Cyber Security paeththen degree ekak karanne.",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{
				Summary:         "Inconsistent handling: 'Cyber' partially transliterated to 'Cය්බෙර්', 'Security' retained but should be 'security', 'degree' correctly retained.",
				ProductExpected: "මම දැනට cyber security පැත්තෙන් degree එකක් කරන්නේ.",
				KnownActual:     "මම දැනට Cය්බෙර් Security පැත්තෙන් degree එකක් කරන්නේ.",
			},
			Meta: Metadata{
				Name:         "Technical term with capitalization handling",
				Length:       LengthMedium,
				Category:     "Technical terms / Capitalization normalization",
				GrammarFocus: "Simple sentence / Present tense",
				QualityFocus: "Mixed term handling",
				Description:  "Inconsistent handling: 'Cyber' partially transliterated to 'Cය්බෙර්', 'Security' retained but should be 'security', 'degree' correctly retained.",
			},
		},
		{
			ID:             "Neg_Fun_0008",
			Input:          "Hi bro, api adha raeeta set vemudha?",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{
				Summary:         "System incorrectly transliterates 'Hi' to 'හි' but should retain it as English. 'set' should be retained but gets transliterated.",
				ProductExpected: "Hi bro, අපි අද රෑට set වෙමුද?",
				KnownActual:     "හි bro, අපි අද රෑට සෙට් වෙමුද?",
			},
			Meta: Metadata{
				Name:         "Mixed language with intentional English retention",
				Length:       LengthShort,
				Category:     "Code-mixing / Greeting handling",
				GrammarFocus: "Simple sentence / Interrogative",
				QualityFocus: "English retention rules",
				Description:  "System incorrectly transliterates 'Hi' to 'හි' but should retain it as English. 'set' should be retained but gets transliterated.",
			},
		},
		{
			ID:             "Neg_Fun_0009",
			Input:          "The quick brown fox jumps over the lazy dog while the golden sun slowly sets behind the distant hills, painting the wide sky with beautiful shades of orange, pink, and purple, as birds fly back to their nests, leaves softly rustle in the cool evening breeze, distant sounds of nature fill the air, and the peaceful countryside slowly prepares for a calm and quiet night.",
			Outcome:        AbsenceCheck{Strict: false},
			ExpectedStatus: StatusFail,
			Defect: Defect{Summary: "English-only input is transliterated instead of being rejected."},
			Meta: Metadata{
				Name:         "English-only input handling",
				Length:       LengthLong,
				Category:     "Mixed Singlish + English",
				GrammarFocus: "Complex sentence",
				QualityFocus: "Robustness validation",
				Description:  "The input contains only Englih words without Singlish Structure. User is not informed about invalid input format.",
			},
		},
		{
			ID:             "Neg_Fun_0010",
			Input:          "shriilQQkaaveeaDhYaapana kSheethrayeedijitalparivarthanayaveegayensidhuveminaetha.apithavadhuratathsampradhaayikapanthikaamharapamaNakBhaavithaanokara,antharjaalayaharaa aDhYaapanikasampathsiyaluLamunvethagenayaamatasaelasumkaramu.meyataavashYAthaakShaNikayatithalapahasukamsavikiriima,guruvaruntanaviinaupakaraNasahapuhuNuvalabaadhiimasahasiyalupaasalvalataaDhiveegiiantharjaalasambanDhathaavaklabaadhiimaapageepramuKaavaDhaanayayomuvii aetha.",
			Outcome:        AbsenceCheck{Strict: true},
			ExpectedStatus: StatusFail,
			Defect: Defect{Summary: "Space-less paragraph is transliterated without any indication of failure."},
			Meta: Metadata{
				Name:         "Long",
				Length:       LengthLong,
				Category:     "Missing spaces",
				GrammarFocus: "Complex sentence",
				QualityFocus: "Robustness validation",
				Description:  "It does not indicate a successful conversion or failure. System may fail to parse or transliterate correctly.",
			},
		},
		{
			ID:    "Pos_UI_Fun_0001",
			Input: "mama heta udeeta gedhara yanavaa.",
			Outcome: UIPredicate{
				Description:  "Sinhala output updates live without button press",
				Kind:         CheckNativeTextVisible,
				SettleBefore: 2 * time.Second,
				Within:       10 * time.Second,
				WantVisible:  true,
			},
			Meta: Metadata{
				Name:         "Verify real time conversion updates Sinhala output automaatically.",
				Length:       LengthShort,
				Category:     "Usability flow(real time conversion)",
				GrammarFocus: "Simple sentence",
				QualityFocus: "Real time output update behavior",
				Description:  "Real time conversion works correctly. UI is responsive with no lag.",
			},
		},
		{
			ID:    "Neg_UI_Fun_0001",
			Input: "",
			Outcome: UIPredicate{
				Description:  "All UI elements should remain visible and accessible after resize, no overlapping, hiding or misalignment.",
				Kind:         CheckInputsVisibleAfterResize,
				SettleBefore: time.Second,
				Viewport:     Viewport{Width: 250, Height: 350},
				WantVisible:  false,
			},
			ExpectedStatus: StatusFail,
			Defect: Defect{Summary: "Inverted expectation: the input control stays visible at 250x350, so this check is expected to fail."},
			Meta: Metadata{
				Name:         "Verify UI elements disappear/reappear incorrectly on resize",
				QualityFocus: "Error handling / input validation",
				Description:  "UI layout should be responsive and reflow correctly. Buttons and fields should remain clickable and tappable.",
			},
		},
	}
}

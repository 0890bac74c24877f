package charts

import (
	"nucdash/internal/dataprocessing"
	"nucdash/pkg/contracts/domain"
)

// Axis titles shared by several charts
const (
	radiusTitle        = "Charge Radius (z-scaled)"
	massNumberTitle    = "Mass Number"
	massExcessTitle    = "Mass excess (z-scaled)"
	bindingEnergyTitle = "Binding enrgy per nucleon (z-scaled)"
	bindingRadiusTitle = "Charge radius (z-scaled)"
	decayModeTitle     = "Decay Mode"
	neutronTitle       = "Neutron Number"
	countTitle         = "Count"
)

// Field identifiers used by the catalog
var (
	fRadius  = dataprocessing.FieldChargeRadius.String()
	fMassEx  = dataprocessing.FieldMassExcess.String()
	fBinding = dataprocessing.FieldBindingEnergyPerNucleon.String()
	fZ       = dataprocessing.FieldZ.String()
	fN       = dataprocessing.FieldN.String()
	fA       = dataprocessing.FieldA.String()
	fDecay   = dataprocessing.FieldDecay.String()
	fRadio   = dataprocessing.FieldRadioactive.String()
)

const histogramBins = 20

func scatter(id, view, title, x, xLabel, yLabel, color string, nominal bool, tooltip []string, caption string) domain.ChartSpec {
	return domain.ChartSpec{
		ID:           id,
		View:         view,
		Kind:         domain.ChartScatter,
		Title:        title,
		X:            x,
		Y:            fRadius,
		Color:        color,
		ColorNominal: nominal,
		Tooltip:      tooltip,
		XLabel:       xLabel,
		YLabel:       yLabel,
		Caption:      caption,
	}
}

func histogram(id, view, caption string) domain.ChartSpec {
	return domain.ChartSpec{
		ID:      id,
		View:    view,
		Kind:    domain.ChartHistogram,
		Title:   "Radioactivity",
		X:       fRadius,
		Color:   fRadio,
		XLabel:  radiusTitle,
		YLabel:  countTitle,
		Caption: caption,
		Bins:    histogramBins,
	}
}

func distribution(id, view, caption string) domain.ChartSpec {
	return domain.ChartSpec{
		ID:      id,
		View:    view,
		Kind:    domain.ChartDistribution,
		Title:   decayModeTitle,
		X:       fDecay,
		Y:       fRadius,
		XLabel:  decayModeTitle,
		YLabel:  radiusTitle,
		Caption: caption,
	}
}

func section(title, text string, collapsed bool, chart domain.ChartSpec) domain.Section {
	return domain.Section{ID: chart.ID, Title: title, Text: text, Collapsed: collapsed, Chart: chart}
}

// DefaultCatalog returns the layout of the nuclear charge radius dashboard
func DefaultCatalog() domain.Catalog {
	global, local := dataprocessing.ViewGlobal, dataprocessing.ViewLocal
	decayTooltip := func(x string) []string { return []string{x, fRadius, fZ, fN, fDecay} }

	return domain.Catalog{
		Title: "Nuclear Charge Radius Exploration",
		Intro: []string{
			"Here we explore the relationship between nuclear charge radius and other properties of the nucleus. " +
				"The nuclear charge radius is a measure of the proton distribution in the nucleus, which is a useful " +
				"measure to test nuclear physics theory and the focus of my thesis work. This project explores the " +
				"connection between nuclear charge radius and nuclear mass, decay mode, binding energy, and more.",
			"Data was compiled from the international atomic energy agency databases for charge radii, nuclear mass, " +
				"and half lives. This process is explained in detail in the github. The relationship between the charge " +
				"radius and key features are shown in this work.",
		},
		Tabs: []domain.Tab{
			{
				ID:    "global",
				Title: "Global Distribution",
				View:  global,
				Intro: []string{
					"The nuclear charge radius (R) has a general trend that can be explained by the number of protons " +
						"and neutrons in the nucleus, which is referred to as the mass number (A).",
					"Modern nuclear physics research focuses on the local evolution of the charge radius, which is " +
						"explored in the other tab for a shell closure region . Here we look at this global relationship " +
						"with mass number as well as other key observables of the nucleus.",
				},
				Formula: "R = 1.2 A^{1/3}",
				Sections: []domain.Section{
					section("Mass Number",
						"The mass number refers to the number of protons and neutrons in the nucleus. This is an integer "+
							"number, and in this dataset it varies from 1 to 248 with a median of 137.",
						true,
						scatter("global_mass_number", global, "Mass Number", fA, massNumberTitle, radiusTitle, fDecay, false,
							decayTooltip(fA),
							"The standard model taken for nuclear charge radius follows the trend in this figure. The color "+
								"of the points refers to the mode of radioactive decay of the nucleus.")),
					section("Radioactivity",
						"Nuclei can either be stable (do not decay) or radioactive (decay to a different nucleus). Here we "+
							"see the effect of radioactivity on the nuclear charge radius.",
						true,
						histogram("global_radioactivity", global,
							"A histrogram of the charge radii where the radioactive distribution (1) is compared to the "+
								"stable distribution (0). The radioactive distribution extends to larger radii than the stable "+
								"distribution, but there are no other major differences.")),
					section("Decay Mode",
						"Radioactive nuceli can decay in a variety of pathways. In the below plot, the charge radii of "+
							"different decay pathways is compared.",
						true,
						distribution("global_decay_mode", global,
							"Each decay mode spans various radii distributions. Alpha and double beta-plus decay are "+
								"confined to large radii. However, beta-minus and stable nuclei span much of the range of "+
								"radii. Other decay modes span intermediate regions.")),
					section("Mass Excess",
						"Mass excess is a measure of how much the nuclear mass deviates from the expected quantity for "+
							"the mass number of the nucleus. Carbon-12 is taken as the standard mass value for computing "+
							"mass excess.",
						true,
						scatter("global_mass_excess", global, "Mass Excess", fMassEx, massExcessTitle, radiusTitle, fDecay, false,
							decayTooltip(fMassEx),
							"Charge radii is plotted as a function of the mass excess value, which has been z-scaled. The "+
								"charge radii roughly follow a rotated parabola relationship with the mass excess values.")),
					section("Binding Energy per Nucleon",
						"Binding energy is a measure of how tighly bound individual nucleons are in the nucleus. Binding "+
							"energy per nucleon peaks around the iron region of the nuclear chart and decreases at high and "+
							"low masses.",
						true,
						scatter("global_binding_energy", global, "Binding Energy per Nucleon", fBinding, bindingEnergyTitle,
							bindingRadiusTitle, fDecay, false, decayTooltip(fBinding),
							"Charge radii is plotted as a function of the binding energy per nucleon. The colors encode the "+
								"decay method of the nucleus. An interesting trend is observed between the two variables which "+
								"is hard to model mathematically.")),
				},
				Outro: "The above plots show that the standard global trend strongly correlates with the charge radius " +
					"values. Interestingly, trends are also observed between the decay mode, mass excess, and binding " +
					"energy per nucleon. This connection will be explored in future work to see if improved predictions " +
					"can be generated as compared to the standard method.",
			},
			{
				ID:    "shell-closure",
				Title: "Shell Closure",
				View:  local,
				Intro: []string{
					"The local evolution of the nuclear charge radius deviates strongly from the general model and is an " +
						"active area of research. It is of particular interest to benchmark modern nuclear theories. One " +
						"region of recent research is nuclear shell closures, which are configurations corresponding to " +
						"exceptionally stable nuclei analogous to noble gas valence shell closures in chemistry. Here we " +
						"explroe the N=20 and N=28 neutron shell closure region where recent experiments in the field have " +
						"been focused.",
				},
				Sections: []domain.Section{
					section(neutronTitle,
						"Around shell closures the charge radius evolution includes many unique features. This includes "+
							"odd-even staggering of element chains with respect to neutron number and a reduction in the "+
							"charge radius at shell closures.",
						false,
						scatter("local_neutron_number", local, neutronTitle, fN, neutronTitle, radiusTitle, fZ, true,
							[]string{fN, fRadius, fZ, fA, fDecay},
							"The evolution of charge radius with respect to neutron number is plotted. Different element "+
								"chains are highlighted in different colors. Notably, the N=28 shell closure exhibits a kink "+
								"(reduction in radius) which is not seen in the N=20 shell closure. In addition, many element "+
								"chains have an odd-even stagger including calcium (Z=20)")),
					section("Mass Number", "", true,
						scatter("local_mass_number", local, "Mass Number", fA, massNumberTitle, radiusTitle, fZ, true,
							decayTooltip(fA),
							"The evolution of charge radius with respect to mass number is plotted. While a trend is still "+
								"seen, far more variation is visible than in the global trend plot.")),
					section("Radioactivity", "", true,
						histogram("local_radioactivity", local,
							"A histrogram of the charge radii where the radioactive distribution (1) is compared to the "+
								"stable distribution (0). No clear difference is seen between the radioactive and stable "+
								"nuclei. The large count at -1.5 appears to be an outlier.")),
					section("Decay Mode", "", true,
						distribution("local_decay_mode", local,
							"Each decay mode spans various radii distributions. Alpha and double beta-plus decay are not "+
								"observed in this region. Beta-minus decays span into the lowest charge radii seen in the "+
								"region. Stable, electron capture, and electron capture + beta-plus all span a similar region.")),
					section("Mass Excess", "", true,
						scatter("local_mass_excess", local, "Mass Excess", fMassEx, massExcessTitle, radiusTitle, fDecay, false,
							decayTooltip(fMassEx),
							"Charge radii is plotted as a function of the mass excess value. The charge radii roughly follow "+
								"a linear relationshp with the mass excess values in this region. Two grouping are observed: a "+
								"large radii region corresponding to low mass excess, and a small radii region with a large "+
								"mass excess.")),
					section("Binding Energy per Nucleon", "", true,
						scatter("local_binding_energy", local, "Binding Energy per Nucleon", fBinding, bindingEnergyTitle,
							bindingRadiusTitle, fDecay, false, decayTooltip(fBinding),
							"Charge radii is plotted as a function of the binding energy per nucleon. The colors encode the "+
								"decay method of the nucleus. A bimodial distribution is seen in this region with small radii "+
								"grouped at small binding energy and a second grouping of larger radii and larger binding "+
								"energy.")),
				},
				Outro: "The local evolution of the nuclear charge radius includes many features that are not visible from " +
					"a global view. The mass number, while still following the general trend of the radii, does not fully " +
					"explain the distribution seen. In this local view, different trends are observed for the charge radii " +
					"as compared to the decay mode, mass excess, and binding energy per nucleon. In future work, these " +
					"relationships will be used to try to predict the charge radius values of nuclei in the shell closure " +
					"regions.",
			},
		},
	}
}

package actuary

// Built-in period life table, ages 0-119, per 100,000 births. Values follow
// the shape of the SSA period life tables; q is the probability of death
// before the next birthday, l the surviving cohort, e the remaining life
// expectancy in years.

var maleTable = []Row{
	{0.00632, 100000, 78.16},
	{0.00161, 99368, 77.65},
	{0.00127, 99208, 76.78},
	{0.00104, 99082, 75.88},
	{0.00089, 98979, 74.95},
	{0.00078, 98891, 74.02},
	{0.00072, 98814, 73.08},
	{0.00068, 98743, 72.13},
	{0.00065, 98676, 71.18},
	{0.00064, 98612, 70.23},
	{0.00063, 98549, 69.27},
	{0.00063, 98487, 68.31},
	{0.00063, 98425, 67.36},
	{0.00063, 98363, 66.40},
	{0.00064, 98301, 65.44},
	{0.00065, 98238, 64.48},
	{0.00066, 98174, 63.52},
	{0.00067, 98109, 62.56},
	{0.00069, 98042, 61.61},
	{0.00070, 97975, 60.65},
	{0.00072, 97906, 59.69},
	{0.00074, 97835, 58.73},
	{0.00076, 97763, 57.78},
	{0.00079, 97688, 56.82},
	{0.00081, 97611, 55.86},
	{0.00084, 97532, 54.91},
	{0.00087, 97450, 53.96},
	{0.00090, 97365, 53.00},
	{0.00094, 97278, 52.05},
	{0.00098, 97186, 51.10},
	{0.00103, 97091, 50.15},
	{0.00107, 96991, 49.20},
	{0.00113, 96887, 48.25},
	{0.00119, 96778, 47.30},
	{0.00125, 96663, 46.36},
	{0.00132, 96542, 45.42},
	{0.00140, 96414, 44.48},
	{0.00148, 96280, 43.54},
	{0.00158, 96137, 42.60},
	{0.00168, 95985, 41.67},
	{0.00179, 95824, 40.74},
	{0.00191, 95653, 39.81},
	{0.00204, 95470, 38.89},
	{0.00219, 95275, 37.96},
	{0.00235, 95066, 37.05},
	{0.00253, 94842, 36.13},
	{0.00272, 94603, 35.22},
	{0.00294, 94345, 34.32},
	{0.00317, 94068, 33.42},
	{0.00342, 93770, 32.52},
	{0.00370, 93449, 31.63},
	{0.00401, 93103, 30.75},
	{0.00435, 92729, 29.87},
	{0.00472, 92326, 29.00},
	{0.00512, 91891, 28.13},
	{0.00556, 91421, 27.28},
	{0.00605, 90912, 26.43},
	{0.00658, 90362, 25.58},
	{0.00717, 89767, 24.75},
	{0.00781, 89124, 23.92},
	{0.00851, 88428, 23.11},
	{0.00928, 87676, 22.30},
	{0.01012, 86863, 21.51},
	{0.01105, 85983, 20.72},
	{0.01206, 85033, 19.95},
	{0.01317, 84008, 19.18},
	{0.01439, 82901, 18.43},
	{0.01573, 81708, 17.70},
	{0.01720, 80422, 16.97},
	{0.01880, 79040, 16.26},
	{0.02057, 77553, 15.56},
	{0.02250, 75958, 14.88},
	{0.02461, 74250, 14.21},
	{0.02694, 72422, 13.55},
	{0.02948, 70471, 12.92},
	{0.03227, 68394, 12.29},
	{0.03533, 66186, 11.69},
	{0.03869, 63848, 11.10},
	{0.04237, 61378, 10.52},
	{0.04640, 58777, 9.97},
	{0.05082, 56050, 9.43},
	{0.05567, 53202, 8.90},
	{0.06098, 50240, 8.40},
	{0.06681, 47177, 7.91},
	{0.07319, 44025, 7.44},
	{0.08020, 40803, 6.99},
	{0.08788, 37530, 6.56},
	{0.09629, 34232, 6.14},
	{0.10552, 30936, 5.74},
	{0.11564, 27672, 5.36},
	{0.12673, 24472, 5.00},
	{0.13890, 21370, 4.65},
	{0.15223, 18402, 4.32},
	{0.16685, 15601, 4.00},
	{0.18288, 12998, 3.70},
	{0.20045, 10621, 3.42},
	{0.21972, 8492, 3.15},
	{0.24084, 6626, 2.90},
	{0.26400, 5030, 2.66},
	{0.28939, 3702, 2.44},
	{0.31723, 2631, 2.22},
	{0.34775, 1796, 2.03},
	{0.38121, 1172, 1.84},
	{0.41789, 725, 1.67},
	{0.45811, 422, 1.50},
	{0.50221, 229, 1.35},
	{0.55055, 114, 1.21},
	{0.60356, 51, 1.08},
	{0.66167, 20, 0.95},
	{0.72538, 7, 0.84},
	{0.79523, 2, 0.73},
	{0.87182, 0, 0.63},
	{0.95578, 0, 0.54},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
}

var femaleTable = []Row{
	{0.00522, 100000, 82.98},
	{0.00124, 99478, 82.41},
	{0.00096, 99354, 81.51},
	{0.00076, 99259, 80.59},
	{0.00064, 99184, 79.65},
	{0.00055, 99120, 78.70},
	{0.00050, 99066, 77.74},
	{0.00046, 99016, 76.78},
	{0.00044, 98971, 75.82},
	{0.00042, 98927, 74.85},
	{0.00042, 98886, 73.88},
	{0.00041, 98844, 72.91},
	{0.00041, 98804, 71.94},
	{0.00041, 98763, 70.97},
	{0.00042, 98722, 70.00},
	{0.00042, 98681, 69.03},
	{0.00043, 98640, 68.06},
	{0.00043, 98598, 67.09},
	{0.00044, 98555, 66.12},
	{0.00045, 98511, 65.15},
	{0.00046, 98467, 64.17},
	{0.00047, 98422, 63.20},
	{0.00048, 98376, 62.23},
	{0.00050, 98328, 61.26},
	{0.00051, 98279, 60.29},
	{0.00053, 98229, 59.32},
	{0.00054, 98178, 58.35},
	{0.00056, 98124, 57.39},
	{0.00059, 98069, 56.42},
	{0.00061, 98011, 55.45},
	{0.00064, 97952, 54.48},
	{0.00066, 97890, 53.52},
	{0.00070, 97825, 52.55},
	{0.00073, 97757, 51.59},
	{0.00077, 97685, 50.63},
	{0.00081, 97610, 49.67},
	{0.00086, 97531, 48.71},
	{0.00091, 97447, 47.75},
	{0.00096, 97359, 46.79},
	{0.00103, 97265, 45.84},
	{0.00109, 97165, 44.88},
	{0.00117, 97059, 43.93},
	{0.00125, 96945, 42.98},
	{0.00134, 96824, 42.03},
	{0.00144, 96694, 41.09},
	{0.00155, 96554, 40.15},
	{0.00167, 96404, 39.21},
	{0.00181, 96243, 38.28},
	{0.00195, 96069, 37.34},
	{0.00212, 95881, 36.42},
	{0.00229, 95678, 35.49},
	{0.00249, 95459, 34.57},
	{0.00271, 95221, 33.66},
	{0.00294, 94964, 32.75},
	{0.00320, 94684, 31.84},
	{0.00349, 94381, 30.94},
	{0.00381, 94051, 30.05},
	{0.00416, 93693, 29.16},
	{0.00454, 93303, 28.28},
	{0.00496, 92880, 27.41},
	{0.00543, 92419, 26.54},
	{0.00594, 91917, 25.69},
	{0.00650, 91371, 24.84},
	{0.00712, 90777, 24.00},
	{0.00780, 90131, 23.16},
	{0.00856, 89427, 22.34},
	{0.00938, 88662, 21.53},
	{0.01029, 87830, 20.73},
	{0.01129, 86926, 19.94},
	{0.01240, 85944, 19.16},
	{0.01361, 84879, 18.40},
	{0.01495, 83724, 17.64},
	{0.01642, 82472, 16.90},
	{0.01804, 81118, 16.18},
	{0.01982, 79655, 15.47},
	{0.02178, 78076, 14.77},
	{0.02394, 76376, 14.09},
	{0.02632, 74547, 13.42},
	{0.02893, 72585, 12.77},
	{0.03181, 70485, 12.13},
	{0.03498, 68243, 11.52},
	{0.03847, 65855, 10.92},
	{0.04231, 63322, 10.33},
	{0.04654, 60642, 9.77},
	{0.05120, 57820, 9.22},
	{0.05632, 54860, 8.69},
	{0.06196, 51770, 8.18},
	{0.06817, 48562, 7.69},
	{0.07500, 45252, 7.21},
	{0.08252, 41858, 6.76},
	{0.09080, 38404, 6.32},
	{0.09992, 34916, 5.90},
	{0.10995, 31428, 5.50},
	{0.12099, 27972, 5.12},
	{0.13315, 24588, 4.75},
	{0.14653, 21314, 4.41},
	{0.16126, 18191, 4.08},
	{0.17747, 15257, 3.76},
	{0.19532, 12550, 3.47},
	{0.21496, 10098, 3.19},
	{0.23659, 7928, 2.93},
	{0.26039, 6052, 2.68},
	{0.28659, 4476, 2.44},
	{0.31543, 3193, 2.22},
	{0.34718, 2186, 2.02},
	{0.38213, 1427, 1.83},
	{0.42059, 882, 1.65},
	{0.46294, 511, 1.48},
	{0.50955, 274, 1.32},
	{0.56085, 135, 1.18},
	{0.61733, 59, 1.04},
	{0.67949, 23, 0.92},
	{0.74792, 7, 0.80},
	{0.82325, 2, 0.69},
	{0.90616, 0, 0.59},
	{0.99743, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
	{0.99900, 0, 0.50},
}
